package chargemaster

import (
	"strings"
)

// Section groups related charge codes the way the charge master form
// presents them.
type Section struct {
	Key   string
	Label string
	Codes []string
}

// Catalog is the fixed set of billable charge codes, in the order the
// front desk sees them. Prices live in the database; the catalog only
// defines what exists and where it sits.
var Catalog = []Section{
	{
		Key:   "registration",
		Label: "1. Registration & Administrative Charges",
		Codes: []string{
			"registration_fee",
			"file_opening_charges",
			"card_opd_slip_charges",
			"admission_processing_fee",
			"emergency_registration_fee",
		},
	},
	{
		Key:   "room_bed",
		Label: "2. Room / Bed Charges (IPD) - Per Day",
		Codes: []string{
			"general_ward_bed",
			"semi_private_room",
			"private_room",
			"deluxe_room",
			"suite_room",
			"icu",
			"iccu",
			"nicu_picu",
			"ventilator_bed",
			"isolation_room",
		},
	},
	{
		Key:   "nursing",
		Label: "3. Nursing Charges",
		Codes: []string{
			"nursing_care_charge",
			"special_nursing_charge",
			"attendant_charges",
		},
	},
	{
		Key:   "doctor_visit",
		Label: "4. Doctor Visit Charges",
		Codes: []string{
			"opd_consultation_fee",
			"opd_followup_fee",
			"ipd_daily_visit_charge",
			"icu_visit_charge",
			"night_visit_charge",
			"surgeon_visit_charge",
		},
	},
	{
		Key:   "procedures",
		Label: "5. Procedures & Treatment Charges",
		Codes: []string{
			"dressing",
			"nebulization",
			"catheterization",
			"injection_charges",
			"iv_fluids_administration",
			"enema",
			"blood_transfusion",
			"plaster_pop",
			"wound_suturing",
			"physiotherapy_session",
			"dialysis_session",
		},
	},
	{
		Key:   "ot_procedure",
		Label: "6. OT / Procedure Room Charges",
		Codes: []string{
			"ot_charges",
			"minor_ot_charges",
			"anesthesia_charges",
			"anesthetist_visit_charge",
			"surgeon_fee",
			"assistant_surgeon_fee",
			"recovery_room_charges",
		},
	},
	{
		Key:   "pharmacy",
		Label: "7. Pharmacy / Medicine Charges",
		Codes: []string{
			"tablets_charge",
			"injections_charge",
			"iv_fluids_charge",
			"consumables_charge",
			"surgical_consumables_charge",
		},
	},
	{
		Key:   "bedside",
		Label: "8. Bedside Services",
		Codes: []string{
			"oxygen_charges",
			"ventilator_charges",
			"defibrillator_usage",
			"cpap_bipap_use",
			"suction_machine",
		},
	},
	{
		Key:   "miscellaneous",
		Label: "9. Miscellaneous Charges",
		Codes: []string{
			"food_charges",
			"linen_charges",
			"biomedical_waste_charges",
			"wheelchair_stretcher_charges",
			"ambulance_charges",
			"mortuary_services",
		},
	},
	{
		Key:   "packages",
		Label: "10. Package Billing",
		Codes: []string{
			"normal_delivery_package",
			"cesarean_section_package",
			"cataract_surgery_package",
			"knee_replacement_package",
			"icu_package",
			"covid_treatment_package",
			"dialysis_package",
		},
	},
}

// RegistrationCodes are one-time charges per admission.
var RegistrationCodes = Catalog[0].Codes

// RoomBedCodes bill per day and may appear at most once per admission.
var RoomBedCodes = Catalog[1].Codes

// NursingCareCode is quantity-limited by the length of stay.
const NursingCareCode = "nursing_care_charge"

// CodeOrder returns every charge code in catalog order.
func CodeOrder() []string {
	var codes []string
	for _, s := range Catalog {
		codes = append(codes, s.Codes...)
	}
	return codes
}

// KnownCode reports whether code exists in the catalog.
func KnownCode(code string) bool {
	for _, s := range Catalog {
		for _, c := range s.Codes {
			if c == code {
				return true
			}
		}
	}
	return false
}

// Humanize turns a charge code into its display name: underscores
// become spaces and each word is title-cased, so "icu" renders as
// "Icu" and "nicu_picu" as "Nicu Picu".
func Humanize(code string) string {
	words := strings.Split(code, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
