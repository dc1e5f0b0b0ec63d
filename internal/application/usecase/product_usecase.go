package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jhoicas/Perecederos-api/internal/application/dto"
	"github.com/jhoicas/Perecederos-api/internal/domain"
	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
	"github.com/jhoicas/Perecederos-api/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductUseCase CRUD y ciclo de vida de productos. Los productos nunca se
// eliminan físicamente: descatalogar es un cambio de estado para conservar el
// historial de lotes y salidas.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create registra un producto. El código de barras es único: si ya existe se
// rechaza con ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Barcode == "" || in.UnitsPerPackage <= 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByBarcode(in.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Price:           in.Price,
		Barcode:         in.Barcode,
		UnitsPerPackage: in.UnitsPerPackage,
		Status:          entity.ProductStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras (lectura de escáner).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, precio o unidades por empaque. No toca el estado
// ni el código de barras (identidad).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.UnitsPerPackage != nil {
		if *in.UnitsPerPackage <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product.UnitsPerPackage = *in.UnitsPerPackage
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente filtrados por estado.
func (uc *ProductUseCase) List(status string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Product
		err  error
	)
	if status == "" {
		list, err = uc.repo.List(page.Limit, page.Offset)
	} else {
		if !entity.ValidStatus(status) {
			return nil, domain.ErrInvalidInput
		}
		list, err = uc.repo.ListByStatus(status, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Search busca por nombre sin distinguir mayúsculas ni tildes
// ("yogur" encuentra "Yogúr Natural"). Filtra en memoria sobre la página
// ampliada del repositorio; suficiente para catálogos de punto de venta.
func (uc *ProductUseCase) Search(query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(500, 0)
	if err != nil {
		return nil, err
	}
	needle := normalizeName(query)
	items := make([]dto.ProductResponse, 0)
	for _, p := range list {
		if strings.Contains(normalizeName(p.Name), needle) {
			items = append(items, *toProductResponse(p))
		}
	}
	if page.Offset < len(items) {
		end := page.Offset + page.Limit
		if end > len(items) {
			end = len(items)
		}
		items = items[page.Offset:end]
	} else {
		items = items[:0]
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Discontinue descataloga el producto (sin recepciones nuevas; historial intacto).
func (uc *ProductUseCase) Discontinue(id string) (*dto.ProductResponse, error) {
	return uc.setStatus(id, entity.ProductStatusDiscontinued)
}

// Activate vuelve el producto a estado vendible (desde DISCONTINUED o PAUSED).
func (uc *ProductUseCase) Activate(id string) (*dto.ProductResponse, error) {
	return uc.setStatus(id, entity.ProductStatusActive)
}

// Pause suspende la reposición sin descatalogar.
func (uc *ProductUseCase) Pause(id string) (*dto.ProductResponse, error) {
	return uc.setStatus(id, entity.ProductStatusPaused)
}

func (uc *ProductUseCase) setStatus(id, status string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Status = status
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// normalizeName minúsculas y sin marcas diacríticas (NFD + quitar Mn).
func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Barcode:         p.Barcode,
		UnitsPerPackage: p.UnitsPerPackage,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
