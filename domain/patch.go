package domain

// Field is one column of a patch. Set=false leaves the stored value alone;
// Set=true with a nil Value clears the column.
type Field struct {
	Value *string
	Set   bool
}

// SetTo returns a field that overwrites the column with v
func SetTo(v string) Field {
	return Field{Value: &v, Set: true}
}

// Clear returns a field that sets the column to NULL
func Clear() Field {
	return Field{Set: true}
}

// PassportColumns lists the textual passport columns a patch may touch
var PassportColumns = []string{
	"passport_type", "country_code", "passport_number", "full_name",
	"nationality", "sex", "date_of_birth", "place_of_birth", "date_of_issue",
	"date_of_expiry", "place_of_issue", "father_name", "spouse_name", "address",
}

// PassportDateColumns are the columns holding YYYY-MM-DD dates
var PassportDateColumns = []string{"date_of_birth", "date_of_issue", "date_of_expiry"}

// PassportPatch describes a partial update of a passport record.
// Columns missing from Fields are left unchanged.
type PassportPatch struct {
	Fields map[string]Field
	Files  PassportFiles
}

// NewPassportPatch returns an empty patch
func NewPassportPatch() *PassportPatch {
	return &PassportPatch{Fields: make(map[string]Field)}
}

// Empty reports whether applying the patch would change nothing
func (p *PassportPatch) Empty() bool {
	if p == nil {
		return true
	}
	for _, f := range p.Fields {
		if f.Set {
			return false
		}
	}
	return p.Files.Photo == "" && p.Files.Signature == ""
}

// Apply writes the set fields and uploaded files into passport
func (p *PassportPatch) Apply(passport *Passport) {
	for name, f := range p.Fields {
		if !f.Set {
			continue
		}
		if col := passport.PassportFields.column(name); col != nil {
			*col = f.Value
		}
	}
	if p.Files.Photo != "" {
		photo := p.Files.Photo
		passport.PassportPhoto = &photo
	}
	if p.Files.Signature != "" {
		sig := p.Files.Signature
		passport.Signature = &sig
	}
}

// Get returns the value stored under a column name
func (f *PassportFields) Get(name string) *string {
	if col := f.column(name); col != nil {
		return *col
	}
	return nil
}

// Set stores v under a column name; unknown names are ignored
func (f *PassportFields) Set(name string, v *string) {
	if col := f.column(name); col != nil {
		*col = v
	}
}

func (f *PassportFields) column(name string) **string {
	switch name {
	case "passport_type":
		return &f.PassportType
	case "country_code":
		return &f.CountryCode
	case "passport_number":
		return &f.PassportNumber
	case "full_name":
		return &f.FullName
	case "nationality":
		return &f.Nationality
	case "sex":
		return &f.Sex
	case "date_of_birth":
		return &f.DateOfBirth
	case "place_of_birth":
		return &f.PlaceOfBirth
	case "date_of_issue":
		return &f.DateOfIssue
	case "date_of_expiry":
		return &f.DateOfExpiry
	case "place_of_issue":
		return &f.PlaceOfIssue
	case "father_name":
		return &f.FatherName
	case "spouse_name":
		return &f.SpouseName
	case "address":
		return &f.Address
	}
	return nil
}
