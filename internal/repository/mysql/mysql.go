package mysql

import (
	"errors"
	"fmt"

	"Lee_Channel/internal/pkg"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true, // duplicate key -> gorm.ErrDuplicatedKey
	})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// translate maps gorm errors into the API taxonomy at the repository
// boundary; nothing above this layer sees a driver error.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkg.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkg.ErrConflict
	default:
		return fmt.Errorf("%w: %v", pkg.ErrInternal, err)
	}
}
