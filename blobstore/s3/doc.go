// Package s3 provides an Amazon S3 implementation of the blobstore.BlobStore
// interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-1"))
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "uploads/")
//	results, err := scan.New(store, txlsh.DefaultConfig).Scan(ctx, "")
//
// # Features
//
//   - Range reads via GetObject
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
