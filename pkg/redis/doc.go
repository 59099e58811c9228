// Package redis opens the Redis connection backing the shared chunk cache.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//		return err
//	}
//	cache := chunkcache.NewRedis(client, chunkcache.WithPrefix(buildID))
//
// Open validates the connection with a ping and retries with linear backoff
// before giving up.
package redis
