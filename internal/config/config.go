package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"

	"mall-commission-api/internal/constant"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	InternalToken string `mapstructure:"internalToken"`
}
type CacheCfg struct {
	Driver     string `mapstructure:"driver"` // redis | memory
	TTLSeconds int    `mapstructure:"ttlSeconds"`
}

// RoleRateCfg 单个角色的三档佣金费率（百分比）
type RoleRateCfg struct {
	Role     int8    `mapstructure:"role"`
	Self     float64 `mapstructure:"self"`
	Direct   float64 `mapstructure:"direct"`
	Indirect float64 `mapstructure:"indirect"`
}

type CommissionCfg struct {
	FreezeDays        int           `mapstructure:"freezeDays"`        // 冻结期（天）
	RefundDays        int           `mapstructure:"refundDays"`        // 订单侧最大退款窗口（天）
	SettleIntervalMin int           `mapstructure:"settleIntervalMin"` // 结算调度间隔（分钟）
	PromoteBatchSize  int           `mapstructure:"promoteBatchSize"`  // 单次晋升扫描上限
	LogShards         int           `mapstructure:"logShards"`         // 资金流水分表数
	Rates             []RoleRateCfg `mapstructure:"rates"`
}

type Root struct {
	Server     ServerCfg     `mapstructure:"server"`
	MysqlMain  MysqlCfg      `mapstructure:"mysql_main"`
	RabbitMQ   RabbitCfg     `mapstructure:"rabbitmq"`
	Redis      RedisCfg      `mapstructure:"redis"`
	Cache      CacheCfg      `mapstructure:"cache"`
	Security   SecurityCfg   `mapstructure:"security"`
	Commission CommissionCfg `mapstructure:"commission"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Commission.FreezeDays <= 0 {
		C.Commission.FreezeDays = 15
	}
	if C.Commission.RefundDays <= 0 {
		C.Commission.RefundDays = 7
	}
	if C.Commission.SettleIntervalMin <= 0 {
		C.Commission.SettleIntervalMin = 60
	}
	if C.Commission.PromoteBatchSize <= 0 {
		C.Commission.PromoteBatchSize = 500
	}
	if C.Commission.LogShards <= 0 {
		C.Commission.LogShards = 4
	}
	if strings.TrimSpace(C.Cache.Driver) == "" {
		C.Cache.Driver = "redis"
	}
	if C.Cache.TTLSeconds <= 0 {
		C.Cache.TTLSeconds = 600
	}

	if err := Validate(&C); err != nil {
		log.Fatalf("config invalid: %v", err)
	}
}

// Validate 校验启动不变量：冻结期必须覆盖订单侧最大退款窗口，
// 否则佣金可能在退款仍可发生时变为可审核。
func Validate(c *Root) error {
	if c.Commission.FreezeDays < c.Commission.RefundDays {
		return &constant.ConfigInvariantError{
			Reason: "freeze window shorter than refund window",
		}
	}
	if c.Cache.Driver != "redis" && c.Cache.Driver != "memory" {
		return &constant.ConfigInvariantError{
			Reason: "cache.driver must be redis or memory",
		}
	}
	return nil
}
