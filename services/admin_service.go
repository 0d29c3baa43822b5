package services

import (
	"errors"

	"gorm.io/gorm"

	"shop-http-service/config"
	"shop-http-service/models"
	"shop-http-service/utils"
)

// InterfaceAdminService 定义管理员服务接口
type InterfaceAdminService interface {
	Authenticate(email, password string) (*models.Admin, error)
	GetAdminByID(id uint) (*models.Admin, error)
	EnsureDefaultAdmin() error
}

// AdminService 提供管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1. Authenticate 校验管理员邮箱与密码
func (s *AdminService) Authenticate(email, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrPasswordIncorrect
	}
	return &admin, nil
}

// 2. GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3. EnsureDefaultAdmin 启动时保证存在一个管理员账号。
// 已有任何管理员时不做任何事。
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(s.Config.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:    s.Config.AdminEmail,
		Password: hashed,
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}
	config.Info("已创建默认管理员账号: %s", admin.Email)
	return nil
}
