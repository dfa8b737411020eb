package dao

import (
	"Streamify/models"
	"Streamify/pkg/snowflake"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionDAO struct {
	Repo[models.Subscription]
}

func NewSubscriptionDAO(db *gorm.DB) *SubscriptionDAO {
	return &SubscriptionDAO{Repo: NewRepo[models.Subscription](db)}
}

// Toggle 锁定频道用户行，切换订阅并维护 users.subscribers_count
func (d *SubscriptionDAO) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, int64, error) {
	var (
		subscribed bool
		count      int64
	)
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&models.User{}).
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("id = ?", channelID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		delta := int64(-1)
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.Subscription{
				ID:           snowflake.GenID(),
				SubscriberID: subscriberID,
				ChannelID:    channelID,
			}).Error; err != nil {
				return err
			}
			delta, subscribed = 1, true
		}

		if err := tx.Model(&models.User{}).Where("id = ?", channelID).
			UpdateColumn("subscribers_count", gorm.Expr("GREATEST(subscribers_count + ?, 0)", delta)).Error; err != nil {
			return err
		}
		var counts []int64
		if err := tx.Model(&models.User{}).Where("id = ?", channelID).Pluck("subscribers_count", &counts).Error; err != nil {
			return err
		}
		if len(counts) > 0 {
			count = counts[0]
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return subscribed, count, nil
}
