package cache

import "time"

// Repository is a small key-value cache port used for hosted-LLM
// response caching.
type Repository interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
}
