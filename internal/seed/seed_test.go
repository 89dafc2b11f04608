package seed

import (
	"context"
	"testing"

	"aerohub/internal/database"
	"aerohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func TestRun(t *testing.T) {
	db := setupSeedDB(t)

	err := Run(context.Background(), db, Options{NumUsers: 5, NumPosts: 12, MaxDays: 30})
	require.NoError(t, err)

	var userCount, postCount, liveryCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Livery{}).Count(&liveryCount)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 12, postCount)
	assert.GreaterOrEqual(t, liveryCount, postCount)

	// counters must agree with the membership tables after reconciliation
	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, post := range posts {
		var likes int64
		db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
		assert.EqualValues(t, likes, post.LikeCount, "post %d like counter", post.ID)
		assert.NotEmpty(t, post.VehicleTypes)
		assert.Positive(t, post.LiveryCount)
	}
}

func TestRunClean(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Run(context.Background(), db, Options{NumUsers: 2, NumPosts: 3}))
	require.NoError(t, Run(context.Background(), db, Options{NumUsers: 2, NumPosts: 3, ShouldClean: true}))

	var userCount, postCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	assert.EqualValues(t, 2, userCount)
	assert.EqualValues(t, 3, postCount)
}

func TestFactoryBuildPost(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	post := f.BuildPost(user, 30)
	assert.NotEmpty(t, post.Title)
	assert.NotEmpty(t, post.Vehicles)
	assert.NotEmpty(t, post.VehicleTypes)
	assert.NotEmpty(t, post.Liveries)
	for _, livery := range post.Liveries {
		require.NotEmpty(t, livery.KeyValues)
		for _, kv := range livery.KeyValues {
			assert.NotEmpty(t, kv.Key)
			assert.Regexp(t, `^\d+$`, kv.Value)
		}
	}
}
