package parser

// Cell markers a POS day sheet is recognized by.
var posKeyMarkers = [][]string{
	{"run financial control report"},
	{"day part summary"},
	{"gross sales before discounts"},
	{"gross sales after discounts"},
	{"time_slots", "time slots", "timeslots"},
}

// Cell markers an online-ordering sheet is recognized by.
var onlineKeyMarkers = [][]string{
	{"online orders", "online ordering", "online order report"},
	{"gross sales", "order total", "total sales"},
	{"discounts", "discount"},
	{"orders", "order count", "order id", "order #"},
}

// SheetRecognizer classifies sheets by scanning their cells for the key
// markers of each known export layout.
type SheetRecognizer struct {
	scanRows int
}

// NewSheetRecognizer creates a recognizer that scans the leading portion
// of each sheet.
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{scanRows: 80}
}

// Recognize classifies one sheet from its name and cell contents. A
// confidence of at least 0.5 is required for a positive match; POS wins
// ties because its markers are the more specific set.
func (r *SheetRecognizer) Recognize(sheetName string, rows [][]string) SheetRecognitionResult {
	cells := r.normalizedCells(rows)

	posConf := markerConfidence(cells, posKeyMarkers)
	onlineConf := markerConfidence(cells, onlineKeyMarkers)

	if posConf >= 0.5 && posConf >= onlineConf {
		return SheetRecognitionResult{SheetName: sheetName, SheetType: SheetTypePOSDay, Confidence: posConf}
	}
	if onlineConf >= 0.5 {
		return SheetRecognitionResult{SheetName: sheetName, SheetType: SheetTypeOnline, Confidence: onlineConf}
	}

	conf := posConf
	if onlineConf > conf {
		conf = onlineConf
	}
	return SheetRecognitionResult{SheetName: sheetName, SheetType: SheetTypeUnknown, Confidence: conf}
}

// normalizedCells flattens the scanned region into normalized labels.
func (r *SheetRecognizer) normalizedCells(rows [][]string) []string {
	var cells []string
	limit := len(rows)
	if limit > r.scanRows {
		limit = r.scanRows
	}
	for _, row := range rows[:limit] {
		for _, cell := range row {
			if n := NormalizeLabel(cell); n != "" {
				cells = append(cells, n)
			}
		}
	}
	return cells
}

// markerConfidence is the fraction of marker groups with at least one
// variant present in the sheet.
func markerConfidence(cells []string, markers [][]string) float64 {
	matched := 0
	for _, variants := range markers {
		for _, cell := range cells {
			if containsVariant(cell, variants) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(markers))
}

func containsVariant(cell string, variants []string) bool {
	for _, v := range variants {
		if cell == v || len(v) > 4 && ContainsAny(cell, []string{v}) {
			return true
		}
	}
	return false
}
