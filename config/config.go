package config

import "time"

type Config struct {
	Web    Web
	Cors   Cors
	DB     DB
	Auth   Auth
	Rate   Rate
	Upload Upload
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:9080"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost:5432"`
	Name       string `conf:"default:capacitanet"`
	DisableTLS bool   `conf:"default:true"`
}

type Auth struct {
	SessionDuration time.Duration `conf:"default:24h"`
}

type Rate struct {
	Burst      int     `conf:"default:5"`
	RPS        float64 `conf:"default:1"`
	ExpiryMins int     `conf:"default:30"`
}

// Upload selects where resource bytes land. With Backend "disk" files are
// written under Dir; with "sftp" they are pushed to the remote host and Dir
// is the remote directory.
type Upload struct {
	Backend   string `conf:"default:disk"`
	Dir       string `conf:"default:uploads"`
	PublicURL string `conf:"default:http://localhost:9080/files"`
	SFTP      SFTP
}

type SFTP struct {
	Host string
	Port int    `conf:"default:22"`
	User string
	Pass string `conf:"mask"`
}
