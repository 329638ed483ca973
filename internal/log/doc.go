// Package log provides simple leveled logging for ip-block-lists.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the application.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures
//
// # Example Usage
//
// Basic logging:
//
//	log.Infof("Fetching aws from %s", url)
//	log.Warnf("No CIDRs found for %s", name)
//	log.Errorf("Failed to fetch: %v", err)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//	log.Debugf("Parsed %d prefixes", n)
package log
