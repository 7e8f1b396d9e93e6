// Package submit provides collaborators that receive a finished
// wizard.FormRecord: a structured log line, an encoded payload on an
// io.Writer, or an HTTP POST. Each satisfies wizard.Submitter and can be
// combined with Multi.
package submit
