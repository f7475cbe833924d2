// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package telemetry wires OpenTelemetry tracing into the API.

Setup installs the global tracer provider. With an output writer, spans are
exported as JSON lines through the stdout exporter; without one the global
provider stays a no-op and instrumented code costs nothing:

	shutdown, err := telemetry.Setup(telemetry.ServiceName, version, os.Stdout)
	defer shutdown(ctx)

Middleware wraps the router so every request except GET /health gets a
server span named "HTTP <method> <path>". Handlers add child spans, such as
dashboard.build, from the request context.
*/
package telemetry
