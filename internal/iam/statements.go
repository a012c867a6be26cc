package iam

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// Pseudo-parameter references CloudFormation resolves at deploy time.
const (
	PseudoRegion    = "${AWS::Region}"
	PseudoAccountID = "${AWS::AccountId}"
)

// UsesPseudoParameters reports whether resource references a
// pseudo-parameter and must be rendered through Fn::Sub.
func UsesPseudoParameters(resource string) bool {
	return strings.Contains(resource, "${AWS::")
}

// LookupRolePattern matches the CDK bootstrap lookup roles in any account.
const LookupRolePattern = "arn:aws:iam::*:role/cdk-*-lookup-role-*"

// AssumeLookupRoleStatement allows assuming the CDK lookup roles so that
// synthesis can resolve context values in target accounts.
func AssumeLookupRoleStatement() Statement {
	return NewAllow([]string{"sts:AssumeRole"}, []string{LookupRolePattern})
}

// GetParameterReadStatement allows reading the SSM parameters stored under
// the application qualifier in the given account and region. An empty
// account or region falls back to the stack's own pseudo-parameter.
func GetParameterReadStatement(account, region, qualifier string) Statement {
	if account == "" {
		account = PseudoAccountID
	}
	if region == "" {
		region = PseudoRegion
	}
	resource := arn.ARN{
		Partition: "aws",
		Service:   "ssm",
		Region:    region,
		AccountID: account,
		Resource:  "parameter/" + qualifier + "/*",
	}
	return NewAllow(
		[]string{"ssm:GetParameter", "ssm:GetParameters", "ssm:GetParametersByPath"},
		[]string{resource.String()},
	)
}

// GetSecretValueStatement allows reading exactly one secret.
func GetSecretValueStatement(secretArn string) Statement {
	return NewAllow([]string{"secretsmanager:GetSecretValue"}, []string{secretArn})
}
