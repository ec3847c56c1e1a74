package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterLister is the part of the SSM client LoadSSM needs.
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSM reads every parameter stored under prefix in AWS Systems Manager
// Parameter Store, using the default AWS credential chain.
func LoadSSM(ctx context.Context, prefix string) (map[string]string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return FetchParameters(ctx, ssm.NewFromConfig(cfg), prefix)
}

// FetchParameters pages through all parameters under prefix, decrypting
// secure strings. Keys are the last segment of each parameter name.
func FetchParameters(ctx context.Context, client ParameterLister, prefix string) (map[string]string, error) {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	values := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := parameterKey(aws.ToString(p.Name))
			if key == "" {
				continue
			}
			values[key] = aws.ToString(p.Value)
		}
	}

	log.Info().Str("prefix", prefix).Int("count", len(values)).Msg("loaded parameters from SSM")
	return values, nil
}

func parameterKey(name string) string {
	name = strings.TrimRight(name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
