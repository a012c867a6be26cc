// Package config defines the repokit configuration file and its validation.
//
// A [Config] describes one managed source repository: the application it
// belongs to, the stack it is synthesized into, the repository itself, the
// pull-request validation build and an optional VPC attachment with an
// outbound proxy. Configurations are stored as YAML (repokit.yaml) and are
// discovered from the working directory upwards by [FindConfigFile].
package config
