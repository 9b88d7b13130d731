package rbac

import (
	"gorm.io/gorm"
)

type EmployeeRole struct {
	EmployeeID string
	RoleID     string
}

type RolePermission struct {
	RoleID   string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(companyID string) ([]EmployeeRole, error)
	GetRolePermissions(companyID string) ([]RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeRoles(companyID string) ([]EmployeeRole, error) {
	var roles []EmployeeRole
	err := r.db.
		Table("employee_roles er").
		Select("er.employee_id::text AS employee_id, er.role_id::text AS role_id").
		Joins("JOIN roles ON roles.id = er.role_id").
		Where("roles.company_id = ?", companyID).
		Scan(&roles).Error
	return roles, err
}

func (r *repository) GetRolePermissions(companyID string) ([]RolePermission, error) {
	var perms []RolePermission
	err := r.db.
		Table("role_permissions rp").
		Select("rp.role_id::text AS role_id, p.resource, p.action").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Joins("JOIN roles ON roles.id = rp.role_id").
		Where("roles.company_id = ?", companyID).
		Scan(&perms).Error
	return perms, err
}
