package vfs

import "github.com/sirupsen/logrus"

// newLogger returns the package-wide structured logger, a child of
// logrus.StandardLogger() tagged with the filesystem's instance id so that
// log lines from multiple in-process Filesystem instances can be told apart
// the way the teacher's debugName() distinguishes AbstractFileSystem instances.
func newLogger(instanceID string) *logrus.Entry {
	return logrus.WithField("vfs", instanceID)
}

// logOp records the outcome of one structural mutation or lookup on the
// operations layer: Debug on success, Warn with the failure's Kind on error.
// Never called from the per-file read/write byte path.
func (fs *Filesystem) logOp(op, path string, err error) {
	fields := logrus.Fields{"op": op, "path": path}
	if err == nil {
		fs.log.WithFields(fields).Debug("op ok")
		return
	}
	if e, ok := err.(*Error); ok {
		fields["kind"] = e.Kind.String()
	}
	fs.log.WithFields(fields).Warn("op failed")
}
