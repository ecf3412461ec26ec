/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package config

import (
	"bytes"
	"fmt"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"linkguard/domain/entities"
	"os"
	"strings"
)

const (
	defaultPort               = 8005
	defaultMaxRequestSize     = 1048576
	defaultUpdateInterval     = 60
	defaultMaxAttempts        = 3
	defaultPollInterval       = 4000
	defaultTimeout            = 15000
	defaultLookupTimeout      = 10000
	defaultReloadInterval     = 300
	defaultAuditQueueSize     = 1000
	defaultAuditWorkers       = 4
	defaultAuditPath          = "log/data_url.txt"
	defaultDenylistPath       = "resources/denylist.txt"
	defaultDenylistRedisKey   = "linkguard:denylist"
	defaultSafeBrowsingClient = "1.0.0"

	DenylistSourceFile  = "file"
	DenylistSourceS3    = "s3"
	DenylistSourceRedis = "redis"
)

type AppConfig struct {
	Aws          AWS
	Scanner      Scanner
	Denylist     Denylist
	Audit        Audit
	Redis        Redis
	Notification Notification
	HTTPServer   HTTPServer
}

type HTTPServer struct {
	AuthorizationKeys []string
	AllowOrigins      string
	Profiler          bool
	Swagger           bool
	Metrics           bool
	MaxRequestSize    int
	Port              int
}

type AWS struct {
	Queue    string
	Region   string
	Resolver string
}

type Scanner struct {
	Policy       string
	DebugLog     bool
	Tracing      bool
	VirusTotal   VirusTotal
	SafeBrowsing SafeBrowsing
}

// VirusTotal intervals are expressed in milliseconds.
type VirusTotal struct {
	APIKey       string
	BaseURL      string
	MaxAttempts  int
	PollInterval int
	Timeout      int
}

// SafeBrowsing.Timeout is expressed in milliseconds.
type SafeBrowsing struct {
	APIKey        string
	BaseURL       string
	ClientVersion string
	Timeout       int
}

// Denylist.ReloadInterval is expressed in seconds, zero disables periodic reloads.
type Denylist struct {
	Source         string
	Path           string
	Bucket         string
	Key            string
	RedisKey       string
	ReloadInterval int
}

type Audit struct {
	Path      string
	QueueSize int
	Workers   int
}

type Redis struct {
	URL      string
	Password string
	UseTLS   bool
}

type Notification struct {
	UpdateInterval int
	Slack          Slack
	Phones         []string
}

type Slack struct {
	ChannelID string
	Webhook   string
}

func NewConfig() *AppConfig {
	return &AppConfig{
		Aws: AWS{
			Region: "us-east-1",
		},
		Scanner: Scanner{
			Policy: string(entities.AlwaysAggregate),
			VirusTotal: VirusTotal{
				MaxAttempts:  defaultMaxAttempts,
				PollInterval: defaultPollInterval,
				Timeout:      defaultTimeout,
			},
			SafeBrowsing: SafeBrowsing{
				ClientVersion: defaultSafeBrowsingClient,
				Timeout:       defaultLookupTimeout,
			},
		},
		Denylist: Denylist{
			Source:         DenylistSourceFile,
			Path:           defaultDenylistPath,
			RedisKey:       defaultDenylistRedisKey,
			ReloadInterval: defaultReloadInterval,
		},
		Audit: Audit{
			Path:      defaultAuditPath,
			QueueSize: defaultAuditQueueSize,
			Workers:   defaultAuditWorkers,
		},
		Notification: Notification{
			UpdateInterval: defaultUpdateInterval,
		},
		HTTPServer: HTTPServer{
			Port:           defaultPort,
			MaxRequestSize: defaultMaxRequestSize,
			AllowOrigins:   "*",
		},
	}
}

func validateConfig(config AppConfig) error {
	if config.Aws.Region == "" {
		return fmt.Errorf("no AWS region specified")
	}

	if _, err := entities.ParseAggregationPolicy(config.Scanner.Policy); err != nil {
		return err
	}

	if config.Scanner.VirusTotal.MaxAttempts < 1 {
		return fmt.Errorf("virustotal max attempts must be at least 1")
	}

	if config.Scanner.VirusTotal.PollInterval < 0 {
		return fmt.Errorf("virustotal poll interval must not be negative")
	}

	if config.Scanner.VirusTotal.Timeout < 0 || config.Scanner.SafeBrowsing.Timeout < 0 {
		return fmt.Errorf("scanner timeouts must not be negative")
	}

	if config.Audit.Path == "" {
		return fmt.Errorf("no audit log path specified")
	}

	if config.Audit.QueueSize < 1 || config.Audit.Workers < 1 {
		return fmt.Errorf("audit queue size and workers must be at least 1")
	}

	switch config.Denylist.Source {
	case DenylistSourceFile:
		if config.Denylist.Path == "" {
			return fmt.Errorf("no denylist path specified")
		}
	case DenylistSourceS3:
		if config.Denylist.Bucket == "" || config.Denylist.Key == "" {
			return fmt.Errorf("denylist source s3 requires bucket and key")
		}
	case DenylistSourceRedis:
		if config.Redis.URL == "" {
			return fmt.Errorf("denylist source redis requires a Redis URL")
		}
	default:
		return fmt.Errorf("unknown denylist source %q", config.Denylist.Source)
	}

	return nil
}

// see supershal approach https://github.com/spf13/viper/issues/188
func LoadConfig() (AppConfig, error) {
	const keyDelimiter = "/"
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	// set default values in viper.
	// Viper needs to know if a key exists in order to override it.
	// https://github.com/spf13/viper/issues/188
	b, err := yaml.Marshal(NewConfig())
	if err != nil {
		return AppConfig{}, err
	}

	defaultConfig := bytes.NewReader(b)

	v.AddConfigPath(os.Getenv("CONFIG_DIR"))
	v.AddConfigPath("../resources/")
	v.AddConfigPath(".")
	v.AddConfigPath("/app/config/")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.MergeConfig(defaultConfig); err != nil {
		return AppConfig{}, err
	}

	// If file not found, return error
	if err := v.MergeInConfig(); err != nil {
		return AppConfig{}, err
	}

	// tell viper to overwrite env variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	// refresh configuration with all merged values
	config := AppConfig{}
	err = v.Unmarshal(&config)

	if err != nil {
		return AppConfig{}, err
	}

	err = validateConfig(config)
	if err != nil {
		return AppConfig{}, err
	}

	return config, nil
}
