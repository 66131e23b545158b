package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/myth3x/mythex-snapshare/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Upload quotas and resolve caching will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// CheckUploadQuota counts an upload against the owner's rolling daily cap.
// Returns false once the cap is exceeded. Fails open when Redis is down:
// quota enforcement is best-effort, registration correctness is not.
func CheckUploadQuota(ownerID string, limit int, window time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}
	key := fmt.Sprintf("upload_quota:%s", ownerID)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, window)
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return redis.Nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, payload, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheDelete(keys ...string) error {
	if Redis == nil || len(keys) == 0 {
		return nil
	}
	return Redis.Del(Ctx, keys...).Err()
}
