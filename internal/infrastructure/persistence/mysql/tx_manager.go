package mysql

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 事务DB通过context传递，Repository用dbFromContext取出
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTransaction fn返回error时回滚，否则提交
// 已处于事务中时复用外层事务（GORM使用Savepoint）
//
//	err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
//	    r, err := reviewRepo.FindOwnedForUpdate(ctx, reviewID, bookID, userID)
//	    if err != nil {
//	        return err
//	    }
//	    return reviewRepo.Update(ctx, r)
//	})
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFromContext(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext 优先使用ctx中的事务
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
