package database

import (
	"fmt"
	"log/slog"

	"github.com/betrhq/betr/go-data-server/internal/config"

	"gorm.io/gorm"
)

// Migrate creates the tables of the given entities based on configuration.
// entities must be ordered by foreign key dependency (referenced tables first).
func Migrate(db *gorm.DB, cfg *config.Config, log *slog.Logger, entities ...any) error {
	if !cfg.Database.IsAutoMigrate {
		log.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	if cfg.Database.IsResetSchema {
		if cfg.IsProduction() {
			return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_RESET_SCHEMA=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
		}

		log.Warn("🔧 스키마 초기화 - 등록된 테이블이 삭제되고 재생성됩니다!",
			"reset_schema", true, "env", cfg.App.Env,
		)
		if err := dropAll(db, log, entities); err != nil {
			return err
		}
	}

	log.Info("📦 테이블 생성 중...", "entities", len(entities))
	for _, m := range entities {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		log.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}

	log.Info("✅ 마이그레이션 완료!")
	return nil
}

// dropAll drops in reverse dependency order (FK constraints)
func dropAll(db *gorm.DB, log *slog.Logger, entities []any) error {
	for i := len(entities) - 1; i >= 0; i-- {
		m := entities[i]
		if !db.Migrator().HasTable(m) {
			continue
		}
		if err := db.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("%T 테이블 삭제 실패: %w", m, err)
		}
		log.Debug("테이블 삭제 성공", "model", fmt.Sprintf("%T", m))
	}
	return nil
}
