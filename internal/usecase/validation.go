package usecase

import (
	"regexp"
	"strings"

	"github.com/xavierca1/vault-leads/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

var allowedAccountTypes = map[string]bool{
	entity.AccountTypeIndividual:  true,
	entity.AccountTypePrivateCorp: true,
	entity.AccountTypeGovernment:  true,
}

var allowedLeadTypes = map[string]bool{
	entity.LeadTypeCustomer: true,
	entity.LeadTypeInvestor: true,
	entity.LeadTypeCareer:   true,
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizePhone strips everything but digits. A bare 10-digit number is
// assumed US/PR and gets a leading 1; 11 digits starting with 1 pass
// through; anything else is returned as-is for the sanity check to catch.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")

	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return digits
	}
	if len(digits) == 10 {
		return "1" + digits
	}
	return digits
}

// isLikelyUSPRPhone expects 11 digits with leading 1 (1787xxxxxxx etc).
func isLikelyUSPRPhone(normalized string) bool {
	return len(normalized) == 11 && strings.HasPrefix(normalized, "1")
}

// BuildLead validates and normalizes a raw submission into a persistable
// draft, honoring the variant the deployment runs. Pure: no I/O here.
// Callers must have handled the honeypot beforehand.
func BuildLead(in IntakeInput, mode string) (*entity.Lead, *DomainError) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, NewValidationError("Email is required.")
	}
	if !IsValidEmail(email) {
		return nil, NewValidationError("Please enter a valid email.")
	}

	lead := entity.NewLead(email)
	lead.Company = strings.TrimSpace(in.Company)

	if source := strings.TrimSpace(in.Source); source != "" {
		lead.Source = source
	}

	switch mode {
	case IntakeModeSegmented:
		if err := fillSegmented(lead, in); err != nil {
			return nil, err
		}
	default:
		if err := fillAccount(lead, in); err != nil {
			return nil, err
		}
	}

	return lead, nil
}

// fillAccount enforces the create-account variant: full name and a
// US/PR phone are mandatory, the account type falls back to individual.
func fillAccount(lead *entity.Lead, in IntakeInput) *DomainError {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(in.Name)
	}
	if fullName == "" {
		return NewValidationError("Full name is required.")
	}

	phoneRaw := strings.TrimSpace(in.Phone)
	if phoneRaw == "" {
		return NewValidationError("Phone is required.")
	}
	phone := NormalizePhone(phoneRaw)
	if !isLikelyUSPRPhone(phone) {
		return NewValidationError("Please enter a valid phone number (PR/US).")
	}

	accountType := strings.ToLower(strings.TrimSpace(in.AccountType))
	if !allowedAccountTypes[accountType] {
		accountType = entity.AccountTypeIndividual
	}

	lead.FullName = fullName
	lead.Phone = phone
	lead.AccountType = accountType
	return nil
}

// fillSegmented enforces the early-access variant: name and a known lead
// type are mandatory, customers must name their organization, and the
// per-type detail fields ride along as optionals.
func fillSegmented(lead *entity.Lead, in IntakeInput) *DomainError {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(in.FullName)
	}
	if name == "" {
		return NewValidationError("Name is required.")
	}

	leadType := strings.ToLower(strings.TrimSpace(in.LeadType))
	if !allowedLeadTypes[leadType] {
		return NewValidationError("Invalid lead type.")
	}

	if leadType == entity.LeadTypeCustomer && lead.Company == "" {
		return NewValidationError("Organization is required for customers.")
	}

	lead.FullName = name
	lead.LeadType = leadType

	if phoneRaw := strings.TrimSpace(in.Phone); phoneRaw != "" {
		lead.Phone = NormalizePhone(phoneRaw)
	}

	lead.Vertical = strings.TrimSpace(in.Vertical)
	lead.Volume = strings.TrimSpace(in.Volume)
	lead.TicketSize = strings.TrimSpace(in.TicketSize)
	lead.Stage = strings.TrimSpace(in.Stage)
	lead.Role = strings.TrimSpace(in.Role)
	return nil
}
