package buildspec

import (
	"slices"
	"strings"

	"github.com/imamik/repokit/internal/config"
)

// Proxy environment variables resolved from the proxy secret.
const (
	EnvProxyUsername  = "PROXY_USERNAME"
	EnvProxyPassword  = "PROXY_PASSWORD"
	EnvProxyDomain    = "PROXY_DOMAIN"
	EnvHTTPProxyPort  = "HTTP_PROXY_PORT"
	EnvHTTPSProxyPort = "HTTPS_PROXY_PORT"
	EnvNoProxy        = "NO_PROXY"
	EnvProxyTestURL   = "PROXY_TEST_URL"
)

// proxySecretKeys maps build variables to JSON keys of the proxy secret.
var proxySecretKeys = [][2]string{
	{EnvProxyUsername, "username"},
	{EnvProxyPassword, "password"},
	{EnvProxyDomain, "proxyDomain"},
	{EnvHTTPProxyPort, "httpProxyPort"},
	{EnvHTTPSProxyPort, "httpsProxyPort"},
}

// pipelineCommands is the canonical build sequence of the CDK pipeline.
var pipelineCommands = []string{
	"./scripts/proxy.sh",
	"npm ci",
	"npm run audit",
	"npm run lint",
	"npm run build",
	"npm run test",
	"npx cdk synth",
}

// PipelineCommands returns the canonical build command sequence.
func PipelineCommands() []string {
	return slices.Clone(pipelineCommands)
}

// Partial returns the base spec for the given network configuration.
//
// Without a proxy secret the spec is empty. With one, the proxy credentials
// are pulled from Secrets Manager and the install phase exports
// HTTP_PROXY/HTTPS_PROXY before anything else runs.
func Partial(vpc *config.VPCProps) *Spec {
	spec := New()
	if vpc == nil || vpc.Proxy == nil || vpc.Proxy.ProxySecretArn == "" {
		return spec
	}
	proxy := vpc.Proxy

	for _, kv := range proxySecretKeys {
		spec.WithSecret(kv[0], proxy.ProxySecretArn+":"+kv[1])
	}
	if len(proxy.NoProxy) > 0 {
		spec.WithVariable(EnvNoProxy, strings.Join(proxy.NoProxy, ","))
	}

	spec.WithCommands(PhaseInstall,
		`export HTTP_PROXY="http://$PROXY_USERNAME:$PROXY_PASSWORD@$PROXY_DOMAIN:$HTTP_PROXY_PORT"`,
		`export HTTPS_PROXY="https://$PROXY_USERNAME:$PROXY_PASSWORD@$PROXY_DOMAIN:$HTTPS_PROXY_PORT"`,
	)

	if proxy.ProxyTestURL != "" {
		spec.WithVariable(EnvProxyTestURL, proxy.ProxyTestURL)
		spec.WithCommands(PhaseInstall, `curl -sSf -o /dev/null "$PROXY_TEST_URL"`)
	}

	return spec
}
