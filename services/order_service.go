package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"shop-http-service/config"
	"shop-http-service/models"
)

// 订单在客户"我的订单"视图中保留30天，之后不再可见
const orderVisibilityDays = 30

// CartLine 结算请求中的一行购物车条目。数量允许客户端传小数，
// 服务端统一向下取整并抬到至少1。
type CartLine struct {
	ProductID uint    `json:"id"`
	Quantity  float64 `json:"quantity"`
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Address *string    `json:"address"`
	Items   []CartLine `json:"items"`
}

// InterfaceOrderService 定义订单服务接口
type InterfaceOrderService interface {
	CreateOrder(req CheckoutRequest, clientToken string) (*models.Order, error)
	ListClientOrders(clientToken string) ([]models.ClientOrder, error)
	DeleteClientOrder(id uint, clientToken string) error
	ListAllOrders() ([]models.AdminOrder, error)
	UpdateOrderStatus(id uint, status string) (*models.Order, error)
	SetItemChecked(orderID, itemID uint, checked bool) error
}

// OrderService 提供订单相关的服务
type OrderService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOrderService 创建一个新的订单服务
func NewOrderService(db *gorm.DB, cfg *config.Config) InterfaceOrderService {
	return &OrderService{
		DB:     db,
		Config: cfg,
	}
}

// 1. CreateOrder 把购物车变成订单。客户端提交的价格一律不信任，
// 逐行按当前商品表重新取价；不存在的商品行静默丢弃，数量规范为
// max(1, floor(qty))。过滤后没有任何有效行时整单拒绝，不产生任何
// 数据库写入。订单与全部明细在一个事务中落库。
func (s *OrderService) CreateOrder(req CheckoutRequest, clientToken string) (*models.Order, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" || len(req.Items) == 0 {
		return nil, ErrValidation
	}

	ids := make([]uint, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := s.DB.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	priceByID := make(map[uint]int64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	var items []models.OrderItem
	var total int64
	for _, line := range req.Items {
		price, ok := priceByID[line.ProductID]
		if !ok {
			continue
		}
		qty := int(math.Floor(line.Quantity))
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  qty,
			Price:     price,
		})
		total += price * int64(qty)
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	expiresAt := time.Now().AddDate(0, 0, orderVisibilityDays)
	order := models.Order{
		ExpiresAt:       &expiresAt,
		TotalPrice:      total,
		ClientToken:     &clientToken,
		Status:          models.OrderStatusPending,
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerAddress: req.Address,
		Items:           items,
	}
	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}

	return &order, nil
}

// 2. ListClientOrders 返回该客户令牌下所有未过期的订单，按ID升序。
// 明细的名称与图片按现存商品行解析，商品被删除后留空。
func (s *OrderService) ListClientOrders(clientToken string) ([]models.ClientOrder, error) {
	var orders []models.Order
	err := s.DB.
		Where("client_token = ?", clientToken).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []models.ClientOrder{}, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	type clientItemRow struct {
		OrderID   uint
		ProductID uint
		Name      string
		Image     string
		Quantity  int
		Price     int64
	}
	var rows []clientItemRow
	err = s.DB.Model(&models.OrderItem{}).
		Select("order_items.order_id, order_items.product_id, order_items.quantity, order_items.price, " +
			"COALESCE(products.name, '') AS name, COALESCE(products.image, '') AS image").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uint][]models.ClientOrderItem, len(orders))
	for _, r := range rows {
		itemsByOrder[r.OrderID] = append(itemsByOrder[r.OrderID], models.ClientOrderItem{
			ProductID: r.ProductID,
			Name:      r.Name,
			Image:     r.Image,
			Quantity:  r.Quantity,
			Price:     r.Price,
		})
	}

	result := make([]models.ClientOrder, 0, len(orders))
	for _, o := range orders {
		items := itemsByOrder[o.ID]
		if items == nil {
			items = []models.ClientOrderItem{}
		}
		result = append(result, models.ClientOrder{
			ID:              o.ID,
			CreatedAt:       o.CreatedAt,
			Status:          o.Status,
			CustomerName:    o.CustomerName,
			CustomerPhone:   o.CustomerPhone,
			CustomerAddress: o.CustomerAddress,
			Items:           items,
			Total:           o.TotalPrice,
		})
	}
	return result, nil
}

// 3. DeleteClientOrder 客户取消自己的订单。订单必须属于该令牌，
// 且仍处于 pending 状态；已进入配货流程的订单拒绝取消。
func (s *OrderService) DeleteClientOrder(id uint, clientToken string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("id = ? AND client_token = ?", id, clientToken).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusPending {
			return ErrOrderNotCancelable
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// 4. ListAllOrders 管理后台订单列表，新订单在前。明细作为配货
// 清单行返回，名称按现存商品行解析。
func (s *OrderService) ListAllOrders() ([]models.AdminOrder, error) {
	var orders []models.Order
	if err := s.DB.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []models.AdminOrder{}, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	type adminItemRow struct {
		OrderID  uint
		ItemID   uint
		Name     string
		Quantity int
		Checked  bool
	}
	var rows []adminItemRow
	err := s.DB.Model(&models.OrderItem{}).
		Select("order_items.order_id, order_items.id AS item_id, order_items.quantity, order_items.checked, "+
			"COALESCE(products.name, '') AS name").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uint][]models.AdminOrderItem, len(orders))
	for _, r := range rows {
		itemsByOrder[r.OrderID] = append(itemsByOrder[r.OrderID], models.AdminOrderItem{
			ItemID:   r.ItemID,
			Name:     r.Name,
			Quantity: r.Quantity,
			Checked:  r.Checked,
		})
	}

	result := make([]models.AdminOrder, 0, len(orders))
	for _, o := range orders {
		items := itemsByOrder[o.ID]
		if items == nil {
			items = []models.AdminOrderItem{}
		}
		result = append(result, models.AdminOrder{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			Total:     o.TotalPrice,
			Status:    o.Status,
			Name:      o.CustomerName,
			Phone:     o.CustomerPhone,
			Address:   o.CustomerAddress,
			Items:     items,
		})
	}
	return result, nil
}

// 5. UpdateOrderStatus 管理员更新订单状态，状态必须在枚举集合内
func (s *OrderService) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// 6. SetItemChecked 管理员勾选或取消勾选配货清单中的一行
func (s *OrderService) SetItemChecked(orderID, itemID uint, checked bool) error {
	var item models.OrderItem
	err := s.DB.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderItemNotFound
	}
	if err != nil {
		return err
	}
	return s.DB.Model(&item).Update("checked", checked).Error
}
