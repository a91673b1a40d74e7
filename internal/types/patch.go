package types

// Fields records which keys a partial (PATCH) body supplied, and which
// of those were an explicit JSON null. A key that is absent is left
// untouched by Apply; a key set to null clears the column if it is
// nullable and is a validation error otherwise.
type Fields struct {
	supplied map[string]bool // key -> value was null
}

// Supply marks key as present in the body.
func (f *Fields) Supply(key string, null bool) {
	if f.supplied == nil {
		f.supplied = make(map[string]bool)
	}
	f.supplied[key] = null
}

// IsNull reports whether key was present with an explicit null.
func (f Fields) IsNull(key string) bool {
	return f.supplied[key]
}

// Nulls returns the supplied keys whose value was null.
func (f Fields) Nulls() []string {
	var keys []string
	for k, null := range f.supplied {
		if null {
			keys = append(keys, k)
		}
	}
	return keys
}

// UserPatch is the body of PATCH /api/users/{id}.
// Only supplied fields are validated and applied.
type UserPatch struct {
	Fields `json:"-" validate:"-"`

	Name      *string `json:"name"       validate:"omitnil,min=1,max=100"`
	Email     *string `json:"email"      validate:"omitnil,email"`
	Age       *int    `json:"age"        validate:"omitnil,gte=0,lte=150"`
	StudentID *string `json:"student_id" validate:"omitnil,student_id"`
}

// Apply copies every supplied field onto u. The id is never touched.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.StudentID != nil {
		u.StudentID = *p.StudentID
	}
}

// ProjectPatch is the body of PATCH /api/projects/{id}.
type ProjectPatch struct {
	Fields `json:"-" validate:"-"`

	Name        *string `json:"name"        validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	OwnerID     *int64  `json:"owner_id"`
}

// Apply copies every supplied field onto p. A supplied null description
// clears it.
func (p ProjectPatch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	switch {
	case p.IsNull("description"):
		pr.Description = nil
	case p.Description != nil:
		pr.Description = p.Description
	}
	if p.OwnerID != nil {
		pr.OwnerID = *p.OwnerID
	}
}

// NullableProjectFields are the ProjectPatch keys that accept null.
var NullableProjectFields = []string{"description"}
