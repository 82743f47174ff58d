package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeSSM) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		token := "next"
		out.NextToken = &token
	}
	return out, nil
}

func param(name, value string) types.Parameter {
	return types.Parameter{Name: &name, Value: &value}
}

func TestOverlayMapsParameterNamesToEnvKeys(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{{
		param("/command-center/prod/RESEND_API_KEY", "re_123"),
		param("/command-center/prod/auth/JWT_SECRET", "s3cret"),
	}}}

	cfg := map[string]string{"RESEND_API_KEY": "stale-local-value"}
	if err := overlayFromClient(context.Background(), cfg, "/command-center/prod", client); err != nil {
		t.Fatalf("overlayFromClient() error = %v", err)
	}

	if got := cfg["RESEND_API_KEY"]; got != "re_123" {
		t.Errorf("RESEND_API_KEY = %q, want parameter store value to win", got)
	}
	if got := cfg["auth_JWT_SECRET"]; got != "s3cret" {
		t.Errorf("auth_JWT_SECRET = %q, want s3cret", got)
	}
}

func TestOverlayFollowsPagination(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{param("/app/A", "1")},
		{param("/app/B", "2")},
	}}

	cfg := map[string]string{}
	if err := overlayFromClient(context.Background(), cfg, "app", client); err != nil {
		t.Fatalf("overlayFromClient() error = %v", err)
	}
	if client.calls != 2 {
		t.Errorf("pages fetched = %d, want 2", client.calls)
	}
	if cfg["A"] != "1" || cfg["B"] != "2" {
		t.Errorf("cfg = %v, want both pages merged", cfg)
	}
}

func TestOverlayPropagatesClientError(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}
	if err := overlayFromClient(context.Background(), map[string]string{}, "/app", client); err == nil {
		t.Fatal("overlayFromClient() = nil, want error")
	}
}
