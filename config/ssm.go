package config

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the slice of the SSM client the overlay needs.
type ssmAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// OverlayFromSSM merges decrypted parameters under prefix into the config
// map. Parameter names are mapped to env-style keys: the prefix is stripped
// and path separators become underscores, so `/command-center/prod/RESEND_API_KEY`
// overlays `RESEND_API_KEY`. Existing process env values are overridden:
// Parameter Store is the source of truth in deployment.
func OverlayFromSSM(ctx context.Context, config map[string]string, prefix string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading AWS config for SSM overlay: %w", err)
	}
	return overlayFromClient(ctx, config, prefix, ssm.NewFromConfig(awsCfg))
}

func overlayFromClient(ctx context.Context, config map[string]string, prefix string, client ssmAPI) error {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimSuffix(prefix, "/")

	withDecryption := true
	recursive := true
	var nextToken *string
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           &prefix,
			Recursive:      &recursive,
			WithDecryption: &withDecryption,
			NextToken:      nextToken,
		})
		if err != nil {
			return fmt.Errorf("fetching parameters under %s: %w", prefix, err)
		}

		for _, param := range out.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			key := strings.TrimPrefix(*param.Name, prefix)
			key = strings.Trim(key, "/")
			key = strings.ReplaceAll(key, "/", "_")
			if key == "" {
				continue
			}
			config[key] = *param.Value
		}

		if out.NextToken == nil {
			return nil
		}
		nextToken = out.NextToken
	}
}
