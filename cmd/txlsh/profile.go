package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/blobstore"
	miniostore "github.com/hupe1980/txlsh/blobstore/minio"
	s3store "github.com/hupe1980/txlsh/blobstore/s3"
	"github.com/hupe1980/txlsh/scan"
)

// Profile is the YAML document read by "txlsh scan --profile".
//
//	config: 256/3/X1
//	threshold: 30
//	source:
//	  type: s3
//	  bucket: corpus
//	  prefix: docs/
//	scan:
//	  workers: 8
//	  rate_limit: 10485760
type Profile struct {
	// Config is the digest configuration in "buckets/checksum/version" form.
	Config string `yaml:"config"`
	// Threshold is the largest distance reported as a near duplicate.
	Threshold int `yaml:"threshold"`
	// NoLength ignores the input length difference.
	NoLength bool        `yaml:"no_length"`
	Source   Source      `yaml:"source"`
	Scan     scan.Config `yaml:"scan"`
	// MetricsAddr serves Prometheus metrics while the scan runs.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Source selects the blob store to scan.
type Source struct {
	// Type is "dir", "s3" or "minio".
	Type string `yaml:"type"`
	// Path is the root directory for "dir".
	Path string `yaml:"path"`
	// Prefix restricts the scan to names with this prefix.
	Prefix string `yaml:"prefix"`

	Bucket     string `yaml:"bucket"`
	RootPrefix string `yaml:"root_prefix"`
	Region     string `yaml:"region"`
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	UseSSL     bool   `yaml:"use_ssl"`
}

func defaultProfile() Profile {
	return Profile{
		Config:    txlsh.DefaultConfig.String(),
		Threshold: 30,
		Source:    Source{Type: "dir", Path: "."},
	}
}

// loadProfile reads path on top of the defaults. Unknown keys are errors.
func loadProfile(path string) (Profile, error) {
	p := defaultProfile()

	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("decode profile %s: %w", path, err)
	}

	return p, nil
}

// validate checks the profile after flags were applied.
func (p Profile) validate() (txlsh.Config, error) {
	cfg, err := txlsh.ParseConfig(p.Config)
	if err != nil {
		return cfg, err
	}
	if p.Threshold < 0 {
		return cfg, fmt.Errorf("threshold must be non-negative, got %d", p.Threshold)
	}
	switch p.Source.Type {
	case "dir":
		if p.Source.Path == "" {
			return cfg, errors.New("source path is required for type dir")
		}
	case "s3", "minio":
		if p.Source.Bucket == "" {
			return cfg, fmt.Errorf("source bucket is required for type %s", p.Source.Type)
		}
		if p.Source.Type == "minio" && p.Source.Endpoint == "" {
			return cfg, errors.New("source endpoint is required for type minio")
		}
	default:
		return cfg, fmt.Errorf("unknown source type %q", p.Source.Type)
	}
	return cfg, nil
}

// openStore connects to the blob store named by the source.
func openStore(ctx context.Context, src Source) (blobstore.BlobStore, error) {
	switch src.Type {
	case "dir":
		return blobstore.NewLocalStore(src.Path), nil
	case "s3":
		var optFns []func(*awsconfig.LoadOptions) error
		if src.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(src.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if src.Endpoint != "" {
				o.BaseEndpoint = aws.String(src.Endpoint)
				o.UsePathStyle = true
			}
		})
		return s3store.NewStore(client, src.Bucket, src.RootPrefix), nil
	case "minio":
		client, err := minio.New(src.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(src.AccessKey, src.SecretKey, ""),
			Secure: src.UseSSL,
			Region: src.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}
		return miniostore.NewStore(client, src.Bucket, src.RootPrefix), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}
