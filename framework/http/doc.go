// Package http provides request and JSON response helpers for the
// inspection handlers.
//
// Request wraps *http.Request:
//
//	req := gohttp.NewRequest(r)
//	req.Query("lifetime", "singleton")
//	req.RouteParam("contract")
//
// Response wraps http.ResponseWriter:
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.MethodNotAllowed()        // 405 {"message": "Method not allowed."}
//	res.ValidationError(errs)     // 422 {"message": ..., "errors": {...}}
//	res.ServerError()             // 500 {"message": "Server Error."}
package http
