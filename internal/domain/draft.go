package domain

// Draft field names, in the fixed order the assistant asks for them.
const (
	FieldName    = "name"
	FieldPhone   = "phone number"
	FieldEmail   = "email address"
	FieldDetails = "complaint details"
)

// ComplaintDraft is the slot-filling record for a complaint being collected.
// Fields are only ever written while still empty; once Collecting is set it
// stays set until a submission attempt completes and Reset is called.
type ComplaintDraft struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Details     string `json:"complaint_details,omitempty"`
	Collecting  bool   `json:"collecting"`
}

// MissingFields returns the names of unfilled slots in the fixed
// name, phone, email, details order.
func (d *ComplaintDraft) MissingFields() []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, FieldName)
	}
	if d.PhoneNumber == "" {
		missing = append(missing, FieldPhone)
	}
	if d.Email == "" {
		missing = append(missing, FieldEmail)
	}
	if d.Details == "" {
		missing = append(missing, FieldDetails)
	}
	return missing
}

// Complete reports whether all four slots are filled.
func (d *ComplaintDraft) Complete() bool {
	return len(d.MissingFields()) == 0
}

// Reset clears all slots and leaves collection mode.
func (d *ComplaintDraft) Reset() {
	*d = ComplaintDraft{}
}
