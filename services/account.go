package services

import (
	"errors"
	"strings"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names carried in login tokens
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// Principal is the authenticated identity of a request. It is exactly one
// of CustomerPrincipal, StaffPrincipal or AdminPrincipal.
type Principal interface {
	Role() string
	Account() string
	isPrincipal()
}

// CustomerPrincipal is a logged in customer
type CustomerPrincipal struct {
	Customer models.Customer
}

// StaffPrincipal is a logged in staff member
type StaffPrincipal struct {
	Staff models.Staff
}

// AdminPrincipal is a logged in administrator
type AdminPrincipal struct {
	Admin models.Admin
}

func (CustomerPrincipal) Role() string      { return RoleCustomer }
func (p CustomerPrincipal) Account() string { return p.Customer.Account }
func (CustomerPrincipal) isPrincipal()      {}

func (StaffPrincipal) Role() string      { return RoleStaff }
func (p StaffPrincipal) Account() string { return p.Staff.Account }
func (StaffPrincipal) isPrincipal()      {}

func (AdminPrincipal) Role() string      { return RoleAdmin }
func (p AdminPrincipal) Account() string { return p.Admin.Account }
func (AdminPrincipal) isPrincipal()      {}

// ResolvePrincipal loads the account named by a verified token
func ResolvePrincipal(db *gorm.DB, role, account string) (Principal, error) {
	switch role {
	case RoleCustomer:
		var customer models.Customer
		if err := db.First(&customer, "account = ?", account).Error; err != nil {
			return nil, notFoundAccount(err, role, account)
		}
		return CustomerPrincipal{Customer: customer}, nil
	case RoleStaff:
		var staff models.Staff
		if err := db.First(&staff, "account = ?", account).Error; err != nil {
			return nil, notFoundAccount(err, role, account)
		}
		return StaffPrincipal{Staff: staff}, nil
	case RoleAdmin:
		var admin models.Admin
		if err := db.First(&admin, "account = ?", account).Error; err != nil {
			return nil, notFoundAccount(err, role, account)
		}
		return AdminPrincipal{Admin: admin}, nil
	default:
		return nil, ErrInvalidRole.WithDetail("role %q", role)
	}
}

func notFoundAccount(err error, role, account string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound.WithDetail("%s %s", role, account)
	}
	return err
}

// RegisterInput carries the registration form
type RegisterInput struct {
	Role        string
	Account     string
	Name        string
	Password    string
	PhoneNumber string
	Email       string
	Address     string
}

func (in *RegisterInput) validate() error {
	in.Account = strings.TrimSpace(in.Account)
	in.Name = utils.SanitizeString(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = utils.SanitizeString(in.Address)

	if valid, msg := utils.ValidateAccount(in.Account); !valid {
		return ErrInvalidAccount.WithDetail("%s", msg)
	}
	if valid, msg := utils.ValidateName(in.Name); !valid {
		return ErrInvalidAccount.WithDetail("%s", msg)
	}
	if valid, msg := utils.ValidatePassword(in.Password); !valid {
		return ErrInvalidAccount.WithDetail("%s", msg)
	}
	if in.Role != RoleCustomer {
		return nil
	}

	if in.PhoneNumber == "" {
		return ErrInvalidAccount.WithDetail("phone number is required")
	}
	valid, phone := utils.ValidatePhone(in.PhoneNumber)
	if !valid {
		return ErrInvalidAccount.WithDetail("%s", phone)
	}
	in.PhoneNumber = phone
	if in.Email != "" {
		if valid, msg := utils.ValidateEmail(in.Email); !valid {
			return ErrInvalidAccount.WithDetail("%s", msg)
		}
	}
	return nil
}

// Register creates a customer or staff account
func Register(tx *gorm.DB, in RegisterInput) (Principal, error) {
	if in.Role != RoleCustomer && in.Role != RoleStaff {
		return nil, ErrInvalidRole.WithDetail("cannot register as %q", in.Role)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	if in.Role == RoleCustomer {
		var count int64
		if err := tx.Model(&models.Customer{}).Where("account = ?", in.Account).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrAccountExists.WithDetail("customer %s", in.Account)
		}

		customer := models.Customer{
			Account:     in.Account,
			Name:        in.Name,
			Password:    hashedPassword,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			Address:     in.Address,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, err
		}
		utils.LogInfo("Registered customer %s", customer.Account)
		return CustomerPrincipal{Customer: customer}, nil
	}

	var count int64
	if err := tx.Model(&models.Staff{}).Where("account = ?", in.Account).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAccountExists.WithDetail("staff %s", in.Account)
	}

	staff := models.Staff{
		Account:  in.Account,
		Name:     in.Name,
		Password: hashedPassword,
	}
	if err := tx.Omit("Bookstore").Create(&staff).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Registered staff %s", staff.Account)
	return StaffPrincipal{Staff: staff}, nil
}

// Login checks the password of the account registered under role
func Login(db *gorm.DB, role, account, password string) (Principal, error) {
	var hashed string
	principal, err := ResolvePrincipal(db, role, account)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	switch p := principal.(type) {
	case CustomerPrincipal:
		hashed = p.Customer.Password
	case StaffPrincipal:
		hashed = p.Staff.Password
	case AdminPrincipal:
		hashed = p.Admin.Password
	}
	if !utils.CheckPassword(password, hashed) {
		utils.LogDebug("Password mismatch for %s %s", role, account)
		return nil, ErrInvalidCredentials
	}
	return principal, nil
}

// ProfileInput carries the editable customer profile fields. Nil fields
// are left unchanged.
type ProfileInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *string
}

// UpdateProfile edits the customer's own profile
func UpdateProfile(tx *gorm.DB, account string, in ProfileInput) (*models.Customer, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := utils.SanitizeString(*in.Name)
		if valid, msg := utils.ValidateName(name); !valid {
			return nil, ErrInvalidAccount.WithDetail("%s", msg)
		}
		updates["name"] = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if valid, msg := utils.ValidateEmail(email); !valid {
				return nil, ErrInvalidAccount.WithDetail("%s", msg)
			}
		}
		updates["email"] = email
	}
	if in.PhoneNumber != nil {
		valid, phone := utils.ValidatePhone(*in.PhoneNumber)
		if !valid || phone == "" {
			return nil, ErrInvalidAccount.WithDetail("phone number must be exactly 10 digits")
		}
		updates["phone_number"] = phone
	}
	if in.Address != nil {
		updates["address"] = utils.SanitizeString(*in.Address)
	}

	return updateCustomer(tx, account, updates)
}

// AdminUpdateCustomer lets an admin edit a customer's name and email
func AdminUpdateCustomer(tx *gorm.DB, account string, name, email *string) (*models.Customer, error) {
	return UpdateProfile(tx, account, ProfileInput{Name: name, Email: email})
}

func updateCustomer(tx *gorm.DB, account string, updates map[string]interface{}) (*models.Customer, error) {
	var customer models.Customer
	if err := tx.First(&customer, "account = ?", account).Error; err != nil {
		return nil, notFoundAccount(err, RoleCustomer, account)
	}
	if len(updates) == 0 {
		return &customer, nil
	}
	if err := tx.Model(&customer).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := tx.First(&customer, "account = ?", account).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Updated customer %s", account)
	return &customer, nil
}

// UserList is the admin overview of every account
type UserList struct {
	Customers []models.Customer `json:"customers"`
	Staff     []models.Staff    `json:"staff"`
	Admins    []models.Admin    `json:"admins"`
}

// ListUsers returns every customer, staff member and admin
func ListUsers(db *gorm.DB) (*UserList, error) {
	list := &UserList{}
	if err := db.Order("account").Find(&list.Customers).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Bookstore").Order("account").Find(&list.Staff).Error; err != nil {
		return nil, err
	}
	if err := db.Order("account").Find(&list.Admins).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteCustomer removes a customer and their cart. Placed orders keep
// their customer snapshot.
func DeleteCustomer(tx *gorm.DB, account string) error {
	var customer models.Customer
	if err := tx.First(&customer, "account = ?", account).Error; err != nil {
		return notFoundAccount(err, RoleCustomer, account)
	}

	var cartIDs []uuid.UUID
	if err := tx.Model(&models.Cart{}).Where("customer_account = ?", account).Pluck("id", &cartIDs).Error; err != nil {
		return err
	}
	if len(cartIDs) > 0 {
		if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", cartIDs).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Delete(&customer).Error; err != nil {
		return err
	}
	utils.LogInfo("Deleted customer %s", account)
	return nil
}

// DeleteStaff removes a staff member together with the coupons they issued.
// Their bookstore stays, as other staff may run it.
func DeleteStaff(tx *gorm.DB, account string) error {
	var staff models.Staff
	if err := tx.First(&staff, "account = ?", account).Error; err != nil {
		return notFoundAccount(err, RoleStaff, account)
	}

	var couponIDs []uuid.UUID
	if err := tx.Model(&models.Coupon{}).Where("staff_account = ?", account).Pluck("id", &couponIDs).Error; err != nil {
		return err
	}
	if err := deleteCoupons(tx, couponIDs); err != nil {
		return err
	}
	if err := tx.Delete(&staff).Error; err != nil {
		return err
	}
	utils.LogInfo("Deleted staff %s", account)
	return nil
}

// EnsureAdmin creates the configured admin account if it does not exist
func EnsureAdmin(db *gorm.DB, account, name, password string) error {
	var count int64
	if err := db.Model(&models.Admin{}).Where("account = ?", account).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return errors.New("ADMIN_PASSWORD must be set to create the admin account")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Admin{Account: account, Name: name, Password: hashedPassword}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Created admin account %s", account)
	return nil
}
