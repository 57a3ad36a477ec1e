package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatası.
// gorm.ErrRecordNotFound üst katmanlara sızdırılmaz.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository temel CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
}

// BaseRepository IBaseRepository'nin GORM implementasyonu. Aggregate
// repositoryleri bunu gömerek ortak işlemleri ve sıralama beyaz listesini
// paylaşır.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]struct{}
}

// NewBaseRepository yeni bir BaseRepository örneği oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]struct{}{}}
}

// SetAllowedSortColumns dışarıdan gelen sort_by değerleri için izin verilen
// sütunları belirler. Listede olmayan istekler varsayılana düşer.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = struct{}{}
	}
}

// SortColumn istenen sütun izinliyse onu, değilse fallback'i döndürür.
func (r *BaseRepository[T]) SortColumn(requested, fallback string) string {
	if _, ok := r.allowedSortColumns[requested]; ok {
		return requested
	}
	return fallback
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}
