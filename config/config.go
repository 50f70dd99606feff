package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Redis     RedisConfigs
	Cache     CacheConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	DefaultLimit int
	MaxLimit     int
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type RedisConfigs struct {
	Addr string
}

type CacheConfigs struct {
	TrendingTagsTTL   time.Duration
	SuggestedUsersTTL time.Duration
	CommunityStatsTTL time.Duration
}
