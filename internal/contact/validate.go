package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMessageMaxRunes caps the message length when configuration leaves
// the limit unset.
const DefaultMessageMaxRunes = 2000

// Submission is a storefront contact-form submission. Company is optional
// and stays nil when the form omitted it.
type Submission struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Company *string `json:"company,omitempty"`
	Message string  `json:"message"`
}

// Result reports every failed field at once. FieldErrors is keyed by the
// JSON field name.
type Result struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// Mainland mobile numbers: 1, second digit 3-9, nine more digits.
var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgNameRequired    = "请输入姓名"
	msgPhoneRequired   = "请输入电话"
	msgPhoneInvalid    = "请输入有效的手机号"
	msgMessageRequired = "请输入留言内容"
	msgMessageTooLong  = "留言内容过长"
	msgEmailInvalid    = "请输入有效的邮箱地址"
)

// Validate checks a submission. Rules are independent: every failing field
// is reported, not just the first. messageMaxRunes caps the message length;
// zero or negative falls back to DefaultMessageMaxRunes.
func Validate(input Submission, messageMaxRunes int) Result {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		fieldErrors["name"] = msgNameRequired
	}

	// Formats run against the raw value: a padded number is not a valid
	// number, it is the caller's job to trim before submitting.
	switch {
	case strings.TrimSpace(input.Phone) == "":
		fieldErrors["phone"] = msgPhoneRequired
	case !phonePattern.MatchString(input.Phone):
		fieldErrors["phone"] = msgPhoneInvalid
	}

	if strings.TrimSpace(input.Email) != "" && !emailPattern.MatchString(input.Email) {
		fieldErrors["email"] = msgEmailInvalid
	}

	if messageMaxRunes <= 0 {
		messageMaxRunes = DefaultMessageMaxRunes
	}
	switch message := strings.TrimSpace(input.Message); {
	case message == "":
		fieldErrors["message"] = msgMessageRequired
	case utf8.RuneCountInString(message) > messageMaxRunes:
		fieldErrors["message"] = msgMessageTooLong
	}

	if len(fieldErrors) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, FieldErrors: fieldErrors}
}

// Sanitize trims every text field. Email collapses to "" when absent;
// a nil company stays nil. Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(input Submission) Submission {
	out := Submission{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Message: strings.TrimSpace(input.Message),
	}
	if input.Company != nil {
		company := strings.TrimSpace(*input.Company)
		out.Company = &company
	}
	return out
}
