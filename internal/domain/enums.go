package domain

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// PostCategory identifies which board a post belongs to.
// Writing to the notice board requires the admin role.
type PostCategory string

const (
	PostCategoryNotice    PostCategory = "notice"
	PostCategoryCommunity PostCategory = "community"
)

func (c PostCategory) String() string { return string(c) }

func (c PostCategory) IsValid() bool {
	switch c {
	case PostCategoryNotice, PostCategoryCommunity:
		return true
	}
	return false
}
