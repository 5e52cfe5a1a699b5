package domain

import "time"

// Role is the authorization role carried by a user
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a user in the system
type User struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	Mobile            string
	PasswordHash      string
	Role              Role
	IsBlocked         bool
	Address           string
	RefreshToken      string
	PasswordChangedAt *time.Time
	ResetTokenHash    *string
	ResetExpiresAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the user projection safe to return to clients
type PublicUser struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Role      Role      `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips credential and session state from the user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      u.Role,
		IsBlocked: u.IsBlocked,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RegisterInput carries registration data
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Password  string
	Role      Role
}

// ProfileUpdate carries the editable profile fields
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Product is a catalog item
type Product struct {
	ID           string    `json:"_id" gorm:"primaryKey;size:36"`
	Title        string    `json:"title" gorm:"not null"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string    `json:"description" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null;index"`
	Category     string    `json:"category" gorm:"index;not null"`
	Brand        string    `json:"brand" gorm:"index;not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	Sold         int       `json:"sold" gorm:"default:0"`
	Color        string    `json:"color" gorm:"not null"`
	TotalRatings int       `json:"totalRatings" gorm:"default:0"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductCategory groups products
type ProductCategory struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogCategory groups blogs
type BlogCategory struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Brand is a product manufacturer
type Brand struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Coupon is a percentage discount code
type Coupon struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Expiry    time.Time `json:"expiry" gorm:"not null"`
	Discount  float64   `json:"discount" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Blog is an article; likes and dislikes are derived from reactions
type Blog struct {
	ID          string    `json:"_id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	NumViews    int       `json:"numViews" gorm:"default:0"`
	Author      string    `json:"author" gorm:"default:Admin"`
	Likes       int       `json:"likes" gorm:"-"`
	Dislikes    int       `json:"dislikes" gorm:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReactionKind is a user's opinion on a blog
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// BlogReaction records one user's reaction to one blog
type BlogReaction struct {
	BlogID    string       `gorm:"primaryKey;size:36"`
	UserID    string       `gorm:"primaryKey;size:36"`
	Kind      ReactionKind `gorm:"size:16;not null"`
	CreatedAt time.Time
}

// CartItemInput is one requested cart line
type CartItemInput struct {
	ProductID string
	Count     int
	Color     string
}

// CartItem is a priced cart line
type CartItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	CartID    string  `json:"-" gorm:"index;size:36"`
	ProductID string  `json:"product" gorm:"size:36;not null"`
	Count     int     `json:"count"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
}

// Cart is a user's priced basket
type Cart struct {
	ID                 string     `json:"_id" gorm:"primaryKey;size:36"`
	UserID             string     `json:"orderby" gorm:"uniqueIndex;size:36;not null"`
	Products           []CartItem `json:"products" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CartTotal          float64    `json:"cartTotal"`
	TotalAfterDiscount float64    `json:"totalAfterDiscount"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// WishlistItem links a user to a product they saved
type WishlistItem struct {
	UserID    string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
}

// Entity is implemented by catalog records addressed by a string ID
type Entity interface {
	AssignID(id string)
}

func (p *Product) AssignID(id string)         { assignID(&p.ID, id) }
func (c *ProductCategory) AssignID(id string) { assignID(&c.ID, id) }
func (c *BlogCategory) AssignID(id string)    { assignID(&c.ID, id) }
func (b *Brand) AssignID(id string)           { assignID(&b.ID, id) }
func (c *Coupon) AssignID(id string)          { assignID(&c.ID, id) }
func (b *Blog) AssignID(id string)            { assignID(&b.ID, id) }
func (c *Cart) AssignID(id string)            { assignID(&c.ID, id) }

func assignID(dst *string, id string) {
	if *dst == "" {
		*dst = id
	}
}
