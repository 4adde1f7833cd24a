package fft

import (
	"testing"

	"github.com/bircni/twenty-first/field"
)

func TestNTTRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
	}{
		{"n=1", 1},
		{"n=2", 2},
		{"n=4", 4},
		{"n=8", 8},
		{"n=64", 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			omega, err := field.PrimitiveRootOfUnity(tt.n)
			if err != nil {
				t.Fatalf("PrimitiveRootOfUnity(%d): %v", tt.n, err)
			}

			buf := make([]field.Element, tt.n)
			for i := range buf {
				buf[i] = field.New(uint64(i*7 + 3))
			}
			original := append([]field.Element(nil), buf...)

			if err := NTT(buf, omega); err != nil {
				t.Fatalf("NTT: %v", err)
			}
			if err := INTT(buf, omega); err != nil {
				t.Fatalf("INTT: %v", err)
			}

			for i := range buf {
				if !buf[i].Equal(original[i]) {
					t.Errorf("round trip mismatch at %d: got %v, want %v", i, buf[i].Value(), original[i].Value())
				}
			}
		})
	}
}

func TestNTTRejectsNonPowerOfTwo(t *testing.T) {
	buf := make([]field.Element, 3)
	omega := field.One
	if err := NTT(buf, omega); err != ErrNotPowerOfTwo {
		t.Errorf("expected ErrNotPowerOfTwo, got %v", err)
	}
}

func TestNTTRejectsBadRoot(t *testing.T) {
	buf := make([]field.Element, 4)
	omega, err := field.PrimitiveRootOfUnity(8)
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}
	if err := NTT(buf, omega); err != ErrBadRoot {
		t.Errorf("expected ErrBadRoot, got %v", err)
	}
}

func TestNTTMatchesPointwiseEvaluation(t *testing.T) {
	const n = 8
	omega, err := field.PrimitiveRootOfUnity(n)
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}

	coeffs := make([]field.Element, n)
	for i := range coeffs {
		coeffs[i] = field.New(uint64(i + 1))
	}

	got := append([]field.Element(nil), coeffs...)
	if err := NTT(got, omega); err != nil {
		t.Fatalf("NTT: %v", err)
	}

	point := field.One
	for i := 0; i < n; i++ {
		want := evaluateNaive(coeffs, point)
		if !got[i].Equal(want) {
			t.Errorf("point %d: got %v, want %v", i, got[i].Value(), want.Value())
		}
		point = point.Mul(omega)
	}
}

func evaluateNaive(coeffs []field.Element, x field.Element) field.Element {
	result := field.Zero
	power := field.One
	for _, c := range coeffs {
		result = result.Add(c.Mul(power))
		power = power.Mul(x)
	}
	return result
}
