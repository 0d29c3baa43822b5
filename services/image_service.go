package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"

	"shop-http-service/config"
	"shop-http-service/models"
	"shop-http-service/utils"
)

// ImageTranscoder 把上传的原始图片字节转码成落盘格式。
// 转码失败时上层回退到原始字节，不会让上传失败。
type ImageTranscoder interface {
	// Transcode 返回转码后的字节和文件扩展名（不含点）
	Transcode(data []byte) ([]byte, string, error)
}

// RealTranscoder 解码任意支持的图片格式，按EXIF方向摆正，
// 超出边界时等比缩小（从不放大），重编码为JPEG。
type RealTranscoder struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Transcode 实现 ImageTranscoder
func (t *RealTranscoder) Transcode(data []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() > t.MaxWidth || bounds.Dy() > t.MaxHeight {
		img = imaging.Fit(img, t.MaxWidth, t.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(t.Quality)); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "jpg", nil
}

// PassthroughTranscoder 永远拒绝转码，让上层走原始字节回退路径。
// 用于关闭转码的部署和测试。
type PassthroughTranscoder struct{}

// Transcode 实现 ImageTranscoder
func (t *PassthroughTranscoder) Transcode(data []byte) ([]byte, string, error) {
	return nil, "", errors.New("transcoding disabled")
}

// InterfaceImageService 定义商品图片服务接口
type InterfaceImageService interface {
	UploadProductImage(productID uint, data []byte, contentType string) (string, error)
	ResolveFile(name string) (string, error)
}

// ImageService 管理商品图片的落盘与数据库关联。文件名由商品ID和
// 内容哈希组成，同一张图重复上传得到同一个文件名。
type ImageService struct {
	DB         *gorm.DB
	Config     *config.Config
	Transcoder ImageTranscoder
}

// NewImageService 创建一个新的图片服务
func NewImageService(db *gorm.DB, cfg *config.Config) InterfaceImageService {
	var transcoder ImageTranscoder
	if cfg.ImageTranscode {
		transcoder = &RealTranscoder{
			MaxWidth:  cfg.ImageMaxWidth,
			MaxHeight: cfg.ImageMaxHeight,
			Quality:   cfg.ImageJPEGQuality,
		}
	} else {
		transcoder = &PassthroughTranscoder{}
	}
	return &ImageService{
		DB:         db,
		Config:     cfg,
		Transcoder: transcoder,
	}
}

// extFromContentType 回退路径下按MIME推断扩展名，认不出来时当作jpg
func extFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}

// 1. UploadProductImage 上传并绑定商品图片。流程是先落盘新文件、
// 再更新数据库引用、最后清理该商品的旧文件；中途失败时数据库仍指向
// 旧文件，新旧文件名不同所以不会指向坏数据。返回新的图片URL路径。
func (s *ImageService) UploadProductImage(productID uint, data []byte, contentType string) (string, error) {
	var product models.Product
	if err := s.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProductNotFound
		}
		return "", err
	}

	hash := utils.ContentHash(data)

	out, ext, err := s.Transcoder.Transcode(data)
	if err != nil {
		// 回退到原始字节原样落盘
		out = data
		ext = extFromContentType(contentType)
	}

	filename := fmt.Sprintf("%d-%s.%s", productID, hash, ext)
	dir := s.Config.ProductsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		config.Error("创建图片目录失败: %v", err)
		return "", ErrImageStorage
	}
	if err := os.WriteFile(filepath.Join(dir, filename), out, 0o644); err != nil {
		config.Error("写入图片文件失败: %v", err)
		return "", ErrImageStorage
	}

	imageURL := "/products/" + filename
	if err := s.DB.Model(&product).Update("image", imageURL).Error; err != nil {
		return "", err
	}

	s.evictStale(productID, filename)
	return imageURL, nil
}

// evictStale 删除该商品除当前文件外的所有历史图片文件，
// 包括旧版没有内容哈希的 {id}.{ext} 命名。文件已不存在时静默跳过。
func (s *ImageService) evictStale(productID uint, keep string) {
	dir := s.Config.ProductsDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	hashedPrefix := fmt.Sprintf("%d-", productID)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == keep {
			continue
		}
		legacy := strings.TrimSuffix(name, filepath.Ext(name)) == fmt.Sprintf("%d", productID)
		if !strings.HasPrefix(name, hashedPrefix) && !legacy {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			config.Warning("清理旧图片失败 %s: %v", name, err)
		}
	}
}

// 2. ResolveFile 把图片URL中的文件名解析为磁盘路径，
// 拒绝任何试图逃出图片目录的路径
func (s *ImageService) ResolveFile(name string) (string, error) {
	cleaned := filepath.Base(filepath.Clean("/" + name))
	if cleaned == "." || cleaned == "/" || cleaned != name {
		return "", ErrValidation
	}

	path := filepath.Join(s.Config.ProductsDir, cleaned)
	if _, err := os.Stat(path); err != nil {
		return "", ErrProductNotFound
	}
	return path, nil
}
