// Package shell runs command lines and script files through the system shell
// on behalf of the !exec family of commands.
//
// Every run gets a uuid so its start and finish can be matched up in the log.
// A non-zero exit status is not an error: the caller shows whatever the
// process printed, stdout first and stderr if stdout was empty.
package shell
