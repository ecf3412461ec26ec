/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package out

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"linkguard/pkg/awsutils"
)

const maxDenylistObjectSize = 64 * 1024 * 1024

type S3DenylistSource struct {
	svc    awsutils.S3
	bucket string
	key    string
}

func NewS3DenylistSource(awsSession *session.Session, awsConfig *aws.Config, bucket, key string) *S3DenylistSource {
	svc := awsutils.S3{}
	svc.Init(awsSession, awsConfig)

	return &S3DenylistSource{svc: svc, bucket: bucket, key: key}
}

func (s *S3DenylistSource) Name() string {
	return "s3"
}

func (s *S3DenylistSource) Fetch(_ context.Context) ([]byte, error) {
	head, err := s.svc.HeadObject(s.bucket, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat denylist object s3://%s/%s. %w", s.bucket, s.key, err)
	}

	if aws.Int64Value(head.ContentLength) > maxDenylistObjectSize {
		return nil, fmt.Errorf("denylist object s3://%s/%s is too large (%d bytes)", s.bucket, s.key, aws.Int64Value(head.ContentLength))
	}

	buffer := aws.NewWriteAtBuffer(make([]byte, 0, aws.Int64Value(head.ContentLength)))
	if err := s.svc.DownloadFromS3Bucket(buffer, s.bucket, s.key); err != nil {
		return nil, fmt.Errorf("failed to download denylist object s3://%s/%s. %w", s.bucket, s.key, err)
	}

	return buffer.Bytes(), nil
}
