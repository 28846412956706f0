package directory

import "strings"

// Fields is the projection requested from the directory service. The view
// needs nothing else.
var Fields = []string{
	"firstName",
	"lastName",
	"age",
	"gender",
	"email",
	"image",
	"phone",
	"bloodGroup",
	"university",
}

// SelectParam is Fields joined the way the service expects it.
func SelectParam() string {
	return strings.Join(Fields, ",")
}

// Person is one record of the remote directory.
type Person struct {
	ID         int    `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Email      string `json:"email"`
	Image      string `json:"image"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"bloodGroup"`
	University string `json:"university"`
}

// FullName joins first and last name.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Page is the decoded service response.
type Page struct {
	Users []Person `json:"users"`
	Total int      `json:"total"`
	Skip  int      `json:"skip"`
	Limit int      `json:"limit"`
}
