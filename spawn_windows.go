// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package execbatch

import (
	"syscall"
)

// sysProcAttr projects the detached flag into the platform spawn attributes.
// Windows has no uid/gid credentials, so those fields are ignored here.
func sysProcAttr(r resolvedOptions) *syscall.SysProcAttr {
	if !r.detached {
		return nil
	}

	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
