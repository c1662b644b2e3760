package redisclient

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/artgallery/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
)

// RedisParam is the optional param for redis connection
type RedisParam struct {
	MaxIdle   int
	MaxActive int
}

// NewPool builds a pool for uri without dialing
func NewPool(uri, password string, param ...RedisParam) *redis.Pool {
	maxIdle := 16
	maxActive := 64
	if len(param) > 0 {
		maxIdle = param[0].MaxIdle
		maxActive = param[0].MaxActive
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if password != "" {
		opts = append(opts, redis.DialPassword(password))
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// ConnectRedis builds a pool for uri and checks the server answers PING
func ConnectRedis(uri, password string, param ...RedisParam) (*redis.Pool, error) {
	p := NewPool(uri, password, param...)

	c := p.Get()
	defer c.Close()
	if _, err := c.Do("PING"); err != nil {
		log.Log().WithFields(log.Fields{
			"redisURI": uri,
			"err":      err,
		}).Error("fail to dial Redis")
		p.Close()
		return nil, err
	}

	log.Log().WithField("redisURI", uri).Info("redis connected")

	return p, nil
}
