/*
Package errors implements the error categories used across swapstore.

The idea is to reuse as many errors from this package as possible and
define custom package errors only when absolutely necessary.

To register a custom error use Register(code, description). For reusing
errors use ErrXyz.New and ErrXyz.Newf, or errors.Wrap(err, "...") to layer
context on top. The code allows distinguishing error categories on the
caller side and acting accordingly.

There is also support for stacktraces. Ensure an error is created using
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation so a
stacktrace is attached. Wrapping multiple times only records the innermost
wrap.

Once you have an error, use fmt verbs to render it:

	%s is just the error message
	%+v includes the full stack trace of the creation point
*/
package errors
