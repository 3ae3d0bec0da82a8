package config

import _ "embed"

// DefaultConfigYAML 嵌入的默认配置，构建进二进制，保证无配置文件也能启动
//
//go:embed default_config.yaml
var DefaultConfigYAML []byte
