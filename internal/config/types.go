package config

// Config is the full description of a managed source repository.
type Config struct {
	// Application identifies the owning application. Name is used in resource
	// names, Qualifier is the CDK bootstrap qualifier exported to builds.
	Application Application `yaml:"application"`

	// Stack is the deployment unit the resources are synthesized into.
	Stack Stack `yaml:"stack"`

	// Repository configures the CodeCommit repository and its PR checks.
	Repository Repository `yaml:"repository"`

	// VPC attaches the validation build to a network. Optional.
	VPC *VPCProps `yaml:"vpc,omitempty"`

	// Artifacts configures where synthesized output is published. Optional.
	Artifacts *Artifacts `yaml:"artifacts,omitempty"`
}

// Application identifies the application that owns the repository.
type Application struct {
	Name      string `yaml:"name"`
	Qualifier string `yaml:"qualifier"`
}

// Stack is the ambient identity of the enclosing deployment unit.
type Stack struct {
	Name    string `yaml:"name"`
	Account string `yaml:"account,omitempty"`
	Region  string `yaml:"region,omitempty"`
}

// Repository configures the managed repository.
type Repository struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Branch      string `yaml:"branch"`

	// CodeGuruReviewer registers an automated code-quality reviewer.
	CodeGuruReviewer bool `yaml:"codeGuruReviewer,omitempty"`

	CodeBuild CodeBuild `yaml:"codeBuild"`
}

// CodeBuild holds the build-execution parameters of the validation job.
type CodeBuild struct {
	IsPrivileged bool   `yaml:"isPrivileged"`
	BuildImage   string `yaml:"buildImage"`
}

// VPCProps attaches builds to a VPC, optionally through an egress proxy.
type VPCProps struct {
	VPCID            string   `yaml:"vpcId"`
	SubnetIDs        []string `yaml:"subnetIds,omitempty"`
	SecurityGroupIDs []string `yaml:"securityGroupIds,omitempty"`
	Proxy            *Proxy   `yaml:"proxy,omitempty"`
}

// Proxy describes the outbound HTTP(S) proxy used inside the VPC.
type Proxy struct {
	// ProxySecretArn points to a Secrets Manager secret with the keys
	// username, password, proxyDomain, httpProxyPort and httpsProxyPort.
	ProxySecretArn string   `yaml:"proxySecretArn,omitempty"`
	NoProxy        []string `yaml:"noProxy,omitempty"`
	ProxyTestURL   string   `yaml:"proxyTestUrl,omitempty"`
}

// Artifacts configures the S3 location for published templates.
type Artifacts struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix,omitempty"`
	Region string `yaml:"region,omitempty"`
}

// ProxySecretArn returns the configured proxy secret ARN, or "" when the
// VPC, the proxy or the ARN itself is absent.
func (c *Config) ProxySecretArn() string {
	if c.VPC == nil || c.VPC.Proxy == nil {
		return ""
	}
	return c.VPC.Proxy.ProxySecretArn
}

// HasVPC returns true if the validation build is attached to a VPC.
func (c *Config) HasVPC() bool {
	return c.VPC != nil && c.VPC.VPCID != ""
}

// HasArtifacts returns true if an artifacts bucket is configured.
func (c *Config) HasArtifacts() bool {
	return c.Artifacts != nil && c.Artifacts.Bucket != ""
}
