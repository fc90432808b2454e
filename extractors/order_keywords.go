package extractors

// keywordRule сопоставляет каноническое значение поля с ключевыми словами,
// по которым оно ищется в нормализованном тексте документа (в нижнем регистре)
type keywordRule struct {
	Value    string
	Keywords []string
}

// productKeywords таблица товаров. Порядок важен: выигрывает первое правило,
// любое ключевое слово которого найдено в тексте
var productKeywords = []keywordRule{
	{Value: "Thrie Beam Crash Barrier", Keywords: []string{"thrie beam", "thrie-beam"}},
	{Value: "W Beam Crash Barrier", Keywords: []string{"w beam", "w-beam", "crash barrier"}},
	{Value: "Hot Thermoplastic Paint", Keywords: []string{"thermoplastic paint", "thermoplastic"}},
	{Value: "Road Marking Paint", Keywords: []string{"road marking paint", "marking paint"}},
	{Value: "Glass Beads", Keywords: []string{"glass bead"}},
	{Value: "Road Studs", Keywords: []string{"road stud", "cat eye", "cat's eye", "cats eye"}},
	{Value: "Traffic Cones", Keywords: []string{"traffic cone", "safety cone"}},
	{Value: "Delineators", Keywords: []string{"delineator"}},
	{Value: "Solar Blinkers", Keywords: []string{"solar blinker", "blinker"}},
	{Value: "Speed Breakers", Keywords: []string{"speed breaker", "speed hump", "rumble strip"}},
	{Value: "Sign Boards", Keywords: []string{"sign board", "signboard", "signage"}},
	{Value: "Overhead Gantry", Keywords: []string{"gantry"}},
}

// subtypeKeywords таблица подтипов. Более специфичные варианты идут раньше общих
// ("bi-directional" раньше "directional", "non-reflective" раньше "reflective")
var subtypeKeywords = []keywordRule{
	{Value: "Thrie-Beam", Keywords: []string{"thrie beam", "thrie-beam"}},
	{Value: "W-Beam", Keywords: []string{"w beam", "w-beam"}},
	{Value: "Bi-Directional", Keywords: []string{"bi-directional", "bidirectional", "bi directional"}},
	{Value: "Unidirectional", Keywords: []string{"unidirectional", "uni-directional", "uni directional"}},
	{Value: "Directional", Keywords: []string{"directional"}},
	{Value: "Non-Reflective", Keywords: []string{"non-reflective", "non reflective"}},
	{Value: "Reflective", Keywords: []string{"retro reflective", "retro-reflective", "retroreflective", "reflective"}},
	{Value: "White", Keywords: []string{"white"}},
	{Value: "Yellow", Keywords: []string{"yellow"}},
	{Value: "Galvanized", Keywords: []string{"galvanized", "galvanised", "hot dip"}},
	{Value: "Mandatory", Keywords: []string{"mandatory sign"}},
	{Value: "Cautionary", Keywords: []string{"cautionary sign"}},
	{Value: "Informatory", Keywords: []string{"informatory sign"}},
}
