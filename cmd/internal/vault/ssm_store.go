package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

const secretsPrefix = "/sorta/secrets/"

// SSMSecretStore keeps secrets as SecureString parameters in AWS SSM
// Parameter Store, encrypted with the account's KMS key.
type SSMSecretStore struct {
	client *ssm.Client
}

func NewSSMSecretStore(ctx context.Context, region string) (*SSMSecretStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("vault: load aws config: %w", err)
	}
	return &SSMSecretStore{client: ssm.NewFromConfig(cfg)}, nil
}

func (s *SSMSecretStore) Get(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(secretsPrefix + key),
		WithDecryption: aws.Bool(true),
	})

	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return *out.Parameter.Value, nil
}

func (s *SSMSecretStore) Set(ctx context.Context, key, value string) error {
	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(secretsPrefix + key),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	})
	return err
}

func (s *SSMSecretStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{
		Name: aws.String(secretsPrefix + key),
	})

	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return ErrNotFound
	}
	return err
}
