package conf

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
	"virustrace/logs"
)

type ConfigStruct struct {
	Mysql struct {
		Host         string `yaml:"Host"`
		Port         int    `yaml:"Port"`
		Username     string `yaml:"Username"`
		Password     string `yaml:"Password"`
		DBName       string `yaml:"DBName"`
		MaxOpenConns int    `yaml:"MaxOpenConns"`
		MaxIdleConns int    `yaml:"MaxIdleConns"`
	} `yaml:"Mysql"`
	Service struct {
		Port string `yaml:"Port"`
	} `yaml:"Service"`
	Trace struct {
		GraphDir string `yaml:"GraphDir"` // where dot and svg files go
		LogFile  string `yaml:"LogFile"`
		Verbose  bool   `yaml:"Verbose"` // log every expansion at debug level
	} `yaml:"Trace"`
}

const (
	DefaultPath     = "conf/config.yaml"
	DefaultPort     = ":8080"
	DefaultGraphDir = "graphs/"
	DefaultLogFile  = "logs/virustrace.log"
)

var Config = Defaults()

// Defaults returns a config that works without a database.
func Defaults() ConfigStruct {
	var c ConfigStruct
	c.applyDefaults()
	return c
}

func (c *ConfigStruct) applyDefaults() {
	if c.Service.Port == "" {
		c.Service.Port = DefaultPort
	}
	if c.Trace.GraphDir == "" {
		c.Trace.GraphDir = DefaultGraphDir
	}
	if c.Trace.LogFile == "" {
		c.Trace.LogFile = DefaultLogFile
	}
}

// DSN builds the MySQL data source name.
func (c ConfigStruct) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=Local",
		c.Mysql.Username,
		c.Mysql.Password,
		c.Mysql.Host,
		c.Mysql.Port,
		c.Mysql.DBName)
}

// Load reads and decodes the YAML file at path.
func Load(path string) (ConfigStruct, error) {
	var c ConfigStruct
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, fmt.Errorf("unmarshal config file %s: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

// Init loads path into Config. A missing file keeps the defaults.
func Init(path string) {
	c, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logs.Logger.Warnf("config file %s not found, using defaults", path)
			return
		}
		logs.Logger.WithError(err).Fatal("load config file failed")
	}
	Config = c
	logs.Logger.Infof("loaded config from %s", path)
}
