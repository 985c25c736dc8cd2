// Package launcher installs and supervises the IDE process inside a
// workstation image.
//
// The archive is downloaded once into the install directory, unpacked and
// started. When the process exits with an error it is relaunched after a
// delay, up to a fixed number of attempts.
package launcher
