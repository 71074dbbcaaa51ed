package config

import "github.com/icaplabs/pagewise/internal/classify"

// DefaultDictionaries returns the built-in freight-document dictionaries
// used when no dictionary directory is configured. Site-specific triggers
// belong in a custom dictionary on disk, not here.
func DefaultDictionaries() *Dictionaries {
	return &Dictionaries{
		Master: classify.ParseCategories(map[string][]string{
			classify.LabelCommercialInvoice: {
				"COMMERCIAL INVOICE",
				"INVOICE",
				"TAX INVOICE",
				"CUSTOMS INVOICE",
				"PROFORMA INVOICE",
			},
			classify.LabelPackingList: {
				"PACKING LIST",
				"PACKING SLIP",
				"PACKLISTE",
			},
			classify.LabelAirwayBill: {
				"AIR WAYBILL",
				"AIRWAY BILL",
				"HOUSE AIR WAYBILL",
				"MASTER AIR WAYBILL",
				"AIR CARGO MANIFEST",
			},
			classify.LabelBillOfLading: {
				"BILL OF LADING",
				"OCEAN BILL OF LADING",
				"HOUSE BILL OF LADING",
				"SEA WAYBILL",
			},
			classify.LabelDeliveryNote: {
				"DELIVERY NOTE",
				"DELIVERY ORDER",
				"LIEFERSCHEIN",
			},
			"Booking Confirmation": {
				"BOOKING CONFIRMATION",
				"BOOKING NOTICE",
				"BOOKING RECEIPT",
			},
		}),
		Custom: classify.CategorySet{},
		MemoryPoints: classify.Matrix{
			classify.LabelCommercialInvoice: {
				"invoice number": 0.35,
				"invoice date":   0.3,
				"total amount":   0.25,
				"unit price":     0.25,
				"payment terms":  0.2,
			},
			classify.LabelPackingList: {
				"gross weight":    0.35,
				"net weight":      0.35,
				"number of boxes": 0.25,
				"dimensions":      0.2,
			},
			classify.LabelAirwayBill: {
				"chargeable weight":      0.35,
				"airport of departure":   0.3,
				"airport of destination": 0.3,
				"flight date":            0.2,
			},
			classify.LabelBillOfLading: {
				"port of loading":   0.35,
				"port of discharge": 0.35,
				"vessel":            0.25,
				"container number":  0.25,
				"shipped on board":  0.2,
			},
		},
		Directions: classify.Directions{
			Page:   []string{"Page", "Page No", "Page Number", "Sheet"},
			German: []string{"Seite", "Seite von"},
			ISF:    []string{"ISF", "Importer Security Filing"},
		},
	}
}
