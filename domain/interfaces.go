package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByRefreshToken(ctx context.Context, token string) (*User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	UpdateAddress(ctx context.Context, id, address string) (*User, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*User, error)
	SetRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshToken(ctx context.Context, token string) (bool, error)
	SetPassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	// ConsumeResetToken swaps the password and clears the reset fields in one
	// update guarded by the token hash and expiry; false means nothing matched.
	ConsumeResetToken(ctx context.Context, id, tokenHash, passwordHash string, now time.Time) (bool, error)
	ToggleWishlist(ctx context.Context, userID, productID string) (bool, error)
	Wishlist(ctx context.Context, userID string) ([]Product, error)
}

// CatalogRepository is the CRUD surface shared by catalog entities
type CatalogRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// ProductRepository adds the query builder to product CRUD
type ProductRepository interface {
	CatalogRepository[Product]
	Query(ctx context.Context, q ProductQuery) ([]Product, error)
	Count(ctx context.Context, filters []Filter) (int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
}

// BlogRepository adds views and reactions to blog CRUD
type BlogRepository interface {
	CatalogRepository[Blog]
	IncrementViews(ctx context.Context, id string) error
	FindReaction(ctx context.Context, blogID, userID string) (*BlogReaction, error)
	SetReaction(ctx context.Context, reaction *BlogReaction) error
	DeleteReaction(ctx context.Context, blogID, userID string) error
	CountReactions(ctx context.Context, blogID string) (likes, dislikes int64, err error)
}

// CartRepository defines cart persistence
type CartRepository interface {
	// Replace stores cart as the user's only cart
	Replace(ctx context.Context, cart *Cart) error
	FindByUser(ctx context.Context, userID string) (*Cart, error)
	DeleteByUser(ctx context.Context, userID string) (*Cart, error)
}

// ProductCache is a read-through cache for single products
type ProductCache interface {
	Get(ctx context.Context, id string) (*Product, bool)
	Set(ctx context.Context, product *Product)
	Invalidate(ctx context.Context, id string)
}

// AuthService defines session management
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	LoginAdmin(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID, password string) (*User, error)
	GetUserProfile(ctx context.Context, userID string) (*User, error)
}

// PasswordResetService defines the forgot/reset password flow
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token, password string) (*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	IssueAccess(userID string) (string, error)
	IssueRefresh(userID string) (string, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// ProductService defines product business logic
type ProductService interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Query(ctx context.Context, q ProductQuery) ([]Product, error)
	Update(ctx context.Context, id string, fields map[string]any) (*Product, error)
	Delete(ctx context.Context, id string) (*Product, error)
}

// BlogService defines blog business logic
type BlogService interface {
	List(ctx context.Context) ([]Blog, error)
	Get(ctx context.Context, id string) (*Blog, error)
	Like(ctx context.Context, blogID, userID string) (*Blog, error)
	Dislike(ctx context.Context, blogID, userID string) (*Blog, error)
}

// CartService defines cart business logic
type CartService interface {
	Save(ctx context.Context, userID string, items []CartItemInput) (*Cart, error)
	Get(ctx context.Context, userID string) (*Cart, error)
	Empty(ctx context.Context, userID string) (*Cart, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// Clock returns the current time; injected so expiry can be simulated
type Clock func() time.Time
