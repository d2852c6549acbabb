package evdisplay

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrOpenGroup represents an error when opening the table group.
type ErrOpenGroup struct {
	GroupName string
	Err       error
}

func (e *ErrOpenGroup) Error() string {
	return fmt.Sprintf("error opening group %q: %v", e.GroupName, e.Err)
}

func (e *ErrOpenGroup) Unwrap() error { return e.Err }

// ErrReadDataset represents an error when reading a dataset.
type ErrReadDataset struct {
	DatasetName string
	Err         error
}

func (e *ErrReadDataset) Error() string {
	return fmt.Sprintf("error reading dataset %q: %v", e.DatasetName, e.Err)
}

func (e *ErrReadDataset) Unwrap() error { return e.Err }

// ErrFieldNotFound is returned when a field is not part of the dataset schema.
type ErrFieldNotFound struct {
	FieldName string
}

func (e *ErrFieldNotFound) Error() string {
	return fmt.Sprintf("field %q not found in dataset schema", e.FieldName)
}

// ErrWriteOutput represents an error when writing one of the outputs.
type ErrWriteOutput struct {
	Filename string
	Err      error
}

func (e *ErrWriteOutput) Error() string {
	return fmt.Sprintf("error writing output %q: %v", e.Filename, e.Err)
}

func (e *ErrWriteOutput) Unwrap() error { return e.Err }
