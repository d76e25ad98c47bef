// Package publish copies result files to a destination outside the output
// directory: another local directory, a MinIO server or an S3 bucket.
//
// Publishers only ever see a name and the file bytes. Names are joined onto
// a configured prefix with path.Join, so the same listing lands at
// "<prefix>/all_unique_sg_7.txt" on every backend.
package publish
