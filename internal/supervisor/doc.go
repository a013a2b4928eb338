// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package supervisor runs the long-lived parts of the predictor under a suture v4
supervisor tree.

Services are grouped into three layers so that a failure in one does not take
down the others:

	cet-predictor
	├── data-layer
	│   ├── DatasetRefreshService  (periodic, file-watch and admin reloads)
	│   └── StorageGCService       (Badger value-log GC for option forms)
	├── maintenance-layer
	│   └── PeriodicService        (login lockout cleanup)
	└── api-layer
	    └── HTTPServerService

Supervisor events are logged through sutureslog, which writes to the zerolog
logger via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewDatasetRefreshService(store, refreshCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
