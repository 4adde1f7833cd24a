package tip5

// roundConstants holds NumRounds*StateSize = 7*16 = 112 round constants,
// added to the state after the MDS layer of each round.
var roundConstants = [numRounds * stateSize]uint64{
	3006656781416918236, 4369161505641058227, 6684374425476535479, 15779820574306927140,
	9604497860052635077, 6451419160553310210, 16926195364602274076, 6738541355147603274,
	13653823767463659393, 16331310420018519380, 10921208506902903237, 5856388654420905056,
	180518533287168595, 6394055120127805757, 4624620449883041133, 4245779370310492662,
	11436753067664141475, 9565904130524743243, 1795462928700216574, 6069083569854718822,
	16847768509740167846, 4958030292488314453, 6638656158077421079, 7387994719600814898,
	1380138540257684527, 2756275326704598308, 6162254851582803897, 4357202747710082448,
	12150731779910470904, 3121517886069239079, 14951334357190345445, 11174705360936334066,
	17619090104023680035, 9879300494565649603, 6833140673689496042, 8026685634318089317,
	6481786893261067369, 15148392398843394510, 11231860157121869734, 2645253741394956018,
	15345701758979398253, 1715545688795694261, 3419893440622363282, 12314745080283886274,
	16173382637268011204, 2012426895438224656, 6886681868854518019, 9323151312904004776,
	14061124303940833928, 14720644192628944300, 3643016909963520634, 15164487940674916922,
	18095609311840631082, 17450128049477479068, 13770238146408051799, 959547712344137104,
	12896174981045071755, 15673600445734665670, 5421724936277706559, 15147580014608980436,
	10475549030802107253, 9781768648599053415, 12208559126136453589, 14883846462224929329,
	4104889747365723917, 748723978556009523, 1227256388689532469, 5479813539795083611,
	8771502115864637772, 16732275956403307541, 4416407293527364014, 828170020209737786,
	12657110237330569793, 6054985640939410036, 4339925773473390539, 12523290846763939879,
	6515670251745069817, 3304839395869669984, 13139364704983394567, 7310284340158351735,
	10864373318031796808, 17752126773383161797, 1934077736434853411, 12181011551355087129,
	16512655861290250275, 17788869165454339633, 12226346139665475316, 521307319751404755,
	18194723210928015140, 11017703779172233841, 15109417014344088693, 16118100307150379696,
	16104548432406078622, 10637262801060241057, 10146828954247700859, 14927431817078997000,
	8849391379213793752, 14873391436448856814, 15301636286727658488, 14600930856978269524,
	14900320206081752612, 9439125422122803926, 17731778886181971775, 11364016993846997841,
	11610707911054206249, 16438527050768899002, 1230592087960588528, 11390503834342845303,
	10608561066917009324, 5454068995870010477, 13783920070953012756, 10807833173700567220,
}

// mdsVector is the circulant-by-columns generator of the MDS matrix: the
// first row, from which every other row is a cyclic rotation.
var mdsVector = [stateSize]uint64{
	256, 8192, 2, 1024, 1, 268436456, 1, 4194304, 524288, 16, 8, 128, 16777216, 2048,
	1073741824, 2,
}
