package models

import (
	"time"

	"learnhub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'student';not null" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) ToPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  domain.Role(u.Role),
	}
}

// ============================================================
// Catalog
// ============================================================

// Category groups courses in the catalog
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// Course represents courses table. EnrolledCount is written only by the
// enrollment transaction.
type Course struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CategoryID    *uint          `gorm:"index" json:"category_id"`
	InstructorID  *uint          `gorm:"index" json:"instructor_id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	MaxSeats      int            `gorm:"not null;default:0" json:"max_seats"`
	EnrolledCount int            `gorm:"not null;default:0" json:"enrolled_count"`
	Status        string         `gorm:"size:20;not null;default:'draft';index" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Instructor *User     `gorm:"foreignKey:InstructorID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) ToDomain() domain.Course {
	return domain.Course{
		ID:            c.ID,
		CategoryID:    c.CategoryID,
		Title:         c.Title,
		Price:         c.Price,
		MaxSeats:      c.MaxSeats,
		EnrolledCount: c.EnrolledCount,
		Status:        domain.CourseStatus(c.Status),
	}
}

// CourseResponse DTO
type CourseResponse struct {
	ID            uint      `json:"id"`
	CategoryID    *uint     `json:"category_id"`
	CategoryName  string    `json:"category_name,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	MaxSeats      int       `json:"max_seats"`
	EnrolledCount int       `json:"enrolled_count"`
	SeatsLeft     int       `json:"seats_left"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Course) ToResponse() *CourseResponse {
	resp := &CourseResponse{
		ID:            c.ID,
		CategoryID:    c.CategoryID,
		Title:         c.Title,
		Description:   c.Description,
		Price:         c.Price,
		MaxSeats:      c.MaxSeats,
		EnrolledCount: c.EnrolledCount,
		SeatsLeft:     c.ToDomain().SeatsLeft(),
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
	if c.Category != nil {
		resp.CategoryName = c.Category.Name
	}
	return resp
}

// ============================================================
// Purchases
// ============================================================

// Purchase represents purchases table. Rows are insert-only.
type Purchase struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Reference      string    `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	CourseID       uint      `gorm:"index;not null" json:"course_id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	PurchaserName  string    `gorm:"size:150;not null" json:"purchaser_name"`
	PurchaserEmail string    `gorm:"size:100;not null" json:"purchaser_email"`
	PurchaserPhone string    `gorm:"size:30" json:"purchaser_phone"`
	PurchaserAddr  string    `gorm:"column:purchaser_address;type:text" json:"purchaser_address"`
	PaymentMethod  string    `gorm:"size:50;not null" json:"payment_method"`
	Comments       string    `gorm:"type:text" json:"comments"`
	Amount         float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase builds an unsaved purchase row for a principal
func NewPurchase(reference string, userID uint, details domain.PurchaseDetails) *Purchase {
	return &Purchase{
		Reference:      reference,
		UserID:         userID,
		PurchaserName:  details.Purchaser.FullName,
		PurchaserEmail: details.Purchaser.Email,
		PurchaserPhone: details.Purchaser.Phone,
		PurchaserAddr:  details.Purchaser.Address,
		PaymentMethod:  details.PaymentMethod,
		Comments:       details.Comments,
	}
}

func (p *Purchase) ToDomain() *domain.PurchaseRecord {
	return &domain.PurchaseRecord{
		ID:        p.ID,
		Reference: p.Reference,
		CourseID:  p.CourseID,
		UserID:    p.UserID,
		Purchaser: domain.Purchaser{
			FullName: p.PurchaserName,
			Email:    p.PurchaserEmail,
			Phone:    p.PurchaserPhone,
			Address:  p.PurchaserAddr,
		},
		PaymentMethod: p.PaymentMethod,
		Comments:      p.Comments,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
	}
}

// PurchaseResponse DTO
type PurchaseResponse struct {
	ID            uint      `json:"id"`
	Reference     string    `json:"reference"`
	CourseID      uint      `json:"course_id"`
	CourseTitle   string    `json:"course_title,omitempty"`
	UserID        uint      `json:"user_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PaymentMethod string    `json:"payment_method"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *Purchase) ToResponse() *PurchaseResponse {
	resp := &PurchaseResponse{
		ID:            p.ID,
		Reference:     p.Reference,
		CourseID:      p.CourseID,
		UserID:        p.UserID,
		FullName:      p.PurchaserName,
		Email:         p.PurchaserEmail,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
	}
	if p.Course != nil {
		resp.CourseTitle = p.Course.Title
	}
	return resp
}

// AutoMigrate creates or updates all tables owned by this service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Course{},
		&Purchase{},
	)
}
