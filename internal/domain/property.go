package domain

import "time"

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Property is the denormalized guest-facing document for one rental unit.
// A fetch always replaces it wholesale; nothing merges into it partially.
type Property struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Slug                string             `json:"slug"`
	WifiName            string             `json:"wifi_name"`
	WifiPassword        string             `json:"wifi_password"`
	CheckinTime         string             `json:"checkin_time"`
	CheckinInstructions string             `json:"checkin_instructions"`
	CheckoutTime        string             `json:"checkout_time"`
	CheckoutInstructions string            `json:"checkout_instructions"`
	HouseRules          []string           `json:"house_rules"`
	HostName            string             `json:"host_name"`
	HostPhone           string             `json:"host_phone"`
	EmergencyContacts   []EmergencyContact `json:"emergency_contacts"`
	FAQ                 []FAQEntry         `json:"faq"`
	ImageURL            string             `json:"image_url,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

type PropertyCreateReq struct {
	Name                string             `json:"name"`
	Slug                string             `json:"slug"`
	WifiName            string             `json:"wifi_name"`
	WifiPassword        string             `json:"wifi_password"`
	CheckinTime         string             `json:"checkin_time"`
	CheckinInstructions string             `json:"checkin_instructions"`
	CheckoutTime        string             `json:"checkout_time"`
	CheckoutInstructions string            `json:"checkout_instructions"`
	HouseRules          []string           `json:"house_rules"`
	HostName            string             `json:"host_name"`
	HostPhone           string             `json:"host_phone"`
	EmergencyContacts   []EmergencyContact `json:"emergency_contacts"`
	FAQ                 []FAQEntry         `json:"faq"`
	ImageURL            string             `json:"image_url,omitempty"`
}
