package parser

import "testing"

func TestRecognize_POSDaySheet(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Sodexo Nikos"},
		{"Date", "05/02/2024"},
		{"Run Financial Control Report"},
		{"Gross Sales Before Discounts", "1050"},
		{"Gross Sales After Discounts", "1000"},
		{"Day Part Summary"},
		{"Time_slots", "Sales Net VAT", "Transactions"},
	}
	r := NewSheetRecognizer()
	result := r.Recognize("Thu 05-02", rows)
	if result.SheetType != SheetTypePOSDay {
		t.Fatalf("type: %s (confidence %v)", result.SheetType, result.Confidence)
	}
	if result.Confidence < 0.99 {
		t.Fatalf("confidence: %v", result.Confidence)
	}
}

func TestRecognize_OnlineSheet(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Online Orders Report"},
		{"Date", "Order Total", "Discount", "Order ID"},
		{"05/02/2024", "45.50", "2.00", "A-1001"},
	}
	r := NewSheetRecognizer()
	result := r.Recognize("orders", rows)
	if result.SheetType != SheetTypeOnline {
		t.Fatalf("type: %s (confidence %v)", result.SheetType, result.Confidence)
	}
}

func TestRecognize_POSWinsOverOnlineOnSharedLabels(t *testing.T) {
	t.Parallel()

	// a POS sheet also contains gross/discount labels the online layout
	// matches on; the more specific marker set must win
	rows := [][]string{
		{"Run Financial Control Report"},
		{"Gross Sales Before Discounts", "1050"},
		{"Total Discounts", "50"},
		{"Gross Sales After Discounts", "1000"},
		{"Transactions", "40"},
		{"Day Part Summary"},
		{"Time_slots", "Sales", "Checks"},
	}
	r := NewSheetRecognizer()
	result := r.Recognize("Thu 05-02", rows)
	if result.SheetType != SheetTypePOSDay {
		t.Fatalf("type: %s (confidence %v)", result.SheetType, result.Confidence)
	}
}

func TestRecognize_UnknownSheet(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Notes"},
		{"Remember to order napkins"},
	}
	r := NewSheetRecognizer()
	result := r.Recognize("notes", rows)
	if result.SheetType != SheetTypeUnknown {
		t.Fatalf("type: %s", result.SheetType)
	}
	if result.Confidence >= 0.5 {
		t.Fatalf("confidence: %v", result.Confidence)
	}
}
